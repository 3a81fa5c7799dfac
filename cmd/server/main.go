// Package main provides the API server entry point for the burn exchange service.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/burn-exchange/internal/adapter"
	"github.com/burn-exchange/internal/api"
	"github.com/burn-exchange/internal/config"
	"github.com/burn-exchange/internal/logging"
	"github.com/burn-exchange/internal/service"
	"github.com/burn-exchange/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	logger.Info("Connecting to databases...")

	postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	defer postgres.Close()

	// ClickHouse and Redis are optional collaborators. A failed connection
	// disables analytics and caching rather than blocking startup.
	var eventRepo *storage.EventRepository
	clickhouse, err := storage.NewClickHouseDB(&cfg.Database.ClickHouse)
	if err != nil {
		logger.WithError(err).Warn("ClickHouse unavailable, burn analytics disabled")
	} else {
		defer clickhouse.Close()
		eventRepo = storage.NewEventRepository(clickhouse)
	}

	var pointsCache *storage.PointsCache
	redis, err := storage.NewRedisCache(&cfg.Database.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, points caching disabled")
	} else {
		defer redis.Close()
		pointsCache = storage.NewPointsCache(redis, cfg.Cache.PointsTTL)
	}

	logger.Info("Database connections established")

	burnRepo := storage.NewBurnRepository(postgres)
	accountRepo := storage.NewAccountRepository(postgres)

	var notifier *adapter.EmailNotifier
	if cfg.Notifier.APIKey != "" {
		notifier = adapter.NewEmailNotifier(&cfg.Notifier)
	} else {
		logger.Warn("No notifier API key configured, email notifications disabled")
	}

	var inventory *adapter.IndexerClient
	if cfg.Indexer.APIKey != "" {
		inventory = adapter.NewIndexerClient(&cfg.Indexer)
	} else {
		logger.Warn("No indexer API key configured, wallet inventory disabled")
	}

	var verifier *adapter.BurnVerifier
	if cfg.Chain.RPCEndpoint != "" {
		verifier, err = adapter.NewBurnVerifier(cfg.Chain.RPCEndpoint)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to chain RPC, burn verification disabled")
		} else {
			defer verifier.Close()
		}
	}

	// The nil checks keep typed nils out of the server's interface fields.
	var eventSink service.EventSink
	if eventRepo != nil {
		eventSink = eventRepo
	}
	var balanceCache service.BalanceCache
	if pointsCache != nil {
		balanceCache = pointsCache
	}
	var burnNotifier service.BurnNotifier
	if notifier != nil {
		burnNotifier = notifier
	}

	swapService := service.NewSwapService(burnRepo, accountRepo, eventSink, burnNotifier, balanceCache)

	logger.Info("Services initialized")

	serverConfig := &api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestsPerSec:  cfg.Server.RequestsPerSec,
		Burst:           cfg.Server.Burst,
	}

	var apiInventory api.InventoryInterface
	if inventory != nil {
		apiInventory = inventory
	}
	var apiVerifier api.VerifierInterface
	if verifier != nil {
		apiVerifier = verifier
	}
	var apiStats api.StatsInterface
	if eventRepo != nil {
		apiStats = eventRepo
	}
	var apiNotifier api.NotifierInterface
	if notifier != nil {
		apiNotifier = notifier
	}

	server := api.NewServer(serverConfig, swapService, apiInventory, apiVerifier, apiStats, apiNotifier)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
