// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/burn-exchange/internal/models"
	"github.com/burn-exchange/internal/service"
	"github.com/burn-exchange/internal/types"
)

// Service interfaces for dependency injection and testing

// SwapServiceInterface defines the interface for swap workflow operations
type SwapServiceInterface interface {
	Swap(ctx context.Context, input *service.SwapInput) (*service.SwapResult, error)
	RecordBurn(ctx context.Context, input *service.SwapInput) (*models.BurnRecord, error)
	ListBurns(ctx context.Context, walletAddress string) ([]*models.BurnRecord, error)
	Points(ctx context.Context, walletAddress string) (*models.PointsSummary, error)
}

// InventoryInterface defines the interface for wallet NFT lookups
type InventoryInterface interface {
	GetWalletNFTs(ctx context.Context, walletAddress string) ([]types.WalletNFT, error)
}

// VerifierInterface defines the interface for on-chain burn verification
type VerifierInterface interface {
	VerifyBurn(ctx context.Context, contractAddress, tokenID, fromAddress, txHash string) (*types.TransferResult, error)
}

// StatsInterface defines the interface for burn analytics queries
type StatsInterface interface {
	Stats(ctx context.Context) (*models.BurnStats, error)
}

// NotifierInterface defines the interface for test email delivery
type NotifierInterface interface {
	SendTest(ctx context.Context, email string) error
}

// Server represents the HTTP API server.
type Server struct {
	router      *mux.Router
	httpServer  *http.Server
	swapService SwapServiceInterface
	inventory   InventoryInterface
	verifier    VerifierInterface
	stats       StatsInterface
	notifier    NotifierInterface
	config      *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RequestsPerSec  int
	Burst           int
}

// NewServer creates a new API server instance. The inventory, verifier, stats,
// and notifier collaborators are optional; nil disables their endpoints.
func NewServer(
	config *ServerConfig,
	swapService SwapServiceInterface,
	inventory InventoryInterface,
	verifier VerifierInterface,
	stats StatsInterface,
	notifier NotifierInterface,
) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		swapService: swapService,
		inventory:   inventory,
		verifier:    verifier,
		stats:       stats,
		notifier:    notifier,
		config:      config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.RequestsPerSec, s.config.Burst)

	// Middleware order matters: logging wraps everything, recovery before
	// CORS so panics in handlers still get a response.
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(RateLimitMiddleware(rateLimiter))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Burn endpoints
	api.HandleFunc("/burn", s.handleBurn).Methods("POST")
	api.HandleFunc("/burn", s.handleListBurns).Methods("GET")

	// Swap endpoints
	api.HandleFunc("/swap", s.handleSwap).Methods("POST")
	api.HandleFunc("/swap", s.handleListBurns).Methods("GET")

	// Points and inventory endpoints
	api.HandleFunc("/points/{wallet}", s.handleGetPoints).Methods("GET")
	api.HandleFunc("/nfts/{wallet}", s.handleGetWalletNFTs).Methods("GET")

	// Verification and analytics endpoints
	api.HandleFunc("/burn/verify", s.handleVerifyBurn).Methods("POST")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")

	// Notification test endpoint
	api.HandleFunc("/notify/test", s.handleNotifyTest).Methods("POST")
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "burn-exchange",
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the configured router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
