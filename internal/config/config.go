// Package config provides configuration management for the burn exchange service.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Chain    ChainConfig
	Indexer  IndexerConfig
	Notifier NotifierConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string
	Host           string
	RequestsPerSec int
	Burst          int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Postgres   PostgresConfig
	ClickHouse ClickHouseConfig
	Redis      RedisConfig
}

// PostgresConfig holds Postgres configuration
type PostgresConfig struct {
	Host           string
	Port           string
	Database       string
	User           string
	Password       string
	MaxConnections int
}

// ClickHouseConfig holds ClickHouse configuration
type ClickHouseConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// ChainConfig holds the RPC endpoint used to verify burn transfers
type ChainConfig struct {
	RPCEndpoint string
	Timeout     time.Duration
}

// IndexerConfig holds the NFT inventory indexer configuration
type IndexerConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NotifierConfig holds the email notification provider configuration
type NotifierConfig struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	Timeout     time.Duration
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	PointsTTL time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// Load .env file (optional in production)
	if err := godotenv.Load(); err != nil {
		// .env file is optional - environment variables can be set directly
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			RequestsPerSec: getEnvAsInt("SERVER_RATE_LIMIT_RPS", 20),
			Burst:          getEnvAsInt("SERVER_RATE_LIMIT_BURST", 10),
		},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{
				Host:           getEnv("POSTGRES_HOST", "localhost"),
				Port:           getEnv("POSTGRES_PORT", "5432"),
				Database:       getEnv("POSTGRES_DB", "burn_exchange"),
				User:           getEnv("POSTGRES_USER", "burn"),
				Password:       getEnv("POSTGRES_PASSWORD", ""),
				MaxConnections: getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 50),
			},
			ClickHouse: ClickHouseConfig{
				Host:     getEnv("CLICKHOUSE_HOST", "localhost"),
				Port:     getEnv("CLICKHOUSE_PORT", "9000"),
				Database: getEnv("CLICKHOUSE_DB", "burn_exchange"),
				User:     getEnv("CLICKHOUSE_USER", "default"),
				Password: getEnv("CLICKHOUSE_PASSWORD", ""),
			},
			Redis: RedisConfig{
				Host:           getEnv("REDIS_HOST", "localhost"),
				Port:           getEnv("REDIS_PORT", "6379"),
				Password:       getEnv("REDIS_PASSWORD", ""),
				DB:             getEnvAsInt("REDIS_DB", 0),
				MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 20),
			},
		},
		Chain: ChainConfig{
			RPCEndpoint: getEnv("CHAIN_RPC_ENDPOINT", ""),
			Timeout:     getEnvAsDuration("CHAIN_RPC_TIMEOUT", 15*time.Second),
		},
		Indexer: IndexerConfig{
			BaseURL: getEnv("INDEXER_BASE_URL", "https://deep-index.moralis.io/api/v2.2"),
			APIKey:  getEnv("INDEXER_API_KEY", ""),
			Timeout: getEnvAsDuration("INDEXER_TIMEOUT", 10*time.Second),
		},
		Notifier: NotifierConfig{
			BaseURL:     getEnv("NOTIFIER_BASE_URL", "https://api.resend.com"),
			APIKey:      getEnv("NOTIFIER_API_KEY", ""),
			FromAddress: getEnv("NOTIFIER_FROM_ADDRESS", "points@burn-exchange.xyz"),
			Timeout:     getEnvAsDuration("NOTIFIER_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			PointsTTL: getEnvAsDuration("CACHE_POINTS_TTL", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
