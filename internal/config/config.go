// Package config provides configuration management for the event monitor service.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	History   HistoryConfig
	Mirror    MirrorConfig
	Catalog   CatalogConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// StorageConfig selects the durable per-user key/value backend
type StorageConfig struct {
	Backend   string
	Namespace string
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

// URL returns the connection URL used by migrations
func (c PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Database)
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

// HistoryConfig holds save history configuration
type HistoryConfig struct {
	Limit          int  // Entries kept in memory per user
	ArchiveEnabled bool // Also append entries to ClickHouse
}

// MirrorConfig holds the external automation endpoint configuration.
// An empty Endpoint disables mirroring.
type MirrorConfig struct {
	Endpoint      string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
}

// CatalogConfig holds event catalog configuration
type CatalogConfig struct {
	Path            string // YAML file; empty means built-in sample events
	RefreshSchedule string // cron spec; empty disables reloads
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
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
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(getEnv("STORAGE_BACKEND", BackendRedis)),
			Namespace: getEnv("STORAGE_NAMESPACE", "kiro"),
		},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{
				Host:           getEnv("POSTGRES_HOST", "localhost"),
				Port:           getEnv("POSTGRES_PORT", "5432"),
				Database:       getEnv("POSTGRES_DB", "event_monitor"),
				User:           getEnv("POSTGRES_USER", "monitor"),
				Password:       getEnv("POSTGRES_PASSWORD", ""),
				MaxConnections: getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 20),
			},
			ClickHouse: ClickHouseConfig{
				Host:     getEnv("CLICKHOUSE_HOST", "localhost"),
				Port:     getEnv("CLICKHOUSE_PORT", "9000"),
				Database: getEnv("CLICKHOUSE_DB", "event_monitor"),
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
		History: HistoryConfig{
			Limit:          getEnvAsInt("HISTORY_LIMIT", 50),
			ArchiveEnabled: getEnvAsBool("HISTORY_ARCHIVE_ENABLED", false),
		},
		Mirror: MirrorConfig{
			Endpoint:      getEnv("MIRROR_ENDPOINT", ""),
			APIKey:        getEnv("MIRROR_API_KEY", ""),
			WebhookSecret: getEnv("MIRROR_WEBHOOK_SECRET", ""),
			Timeout:       getEnvAsDuration("MIRROR_TIMEOUT", 8*time.Second),
		},
		Catalog: CatalogConfig{
			Path:            getEnv("CATALOG_PATH", ""),
			RefreshSchedule: getEnv("CATALOG_REFRESH_SCHEDULE", ""),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			TTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 20),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks values that have no safe default
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %s or %s)", c.Storage.Backend, BackendRedis, BackendPostgres)
	}

	if c.Storage.Namespace == "" {
		return fmt.Errorf("STORAGE_NAMESPACE must not be empty")
	}

	if c.Mirror.Timeout <= 0 {
		return fmt.Errorf("MIRROR_TIMEOUT must be positive")
	}

	if c.History.Limit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive")
	}

	return nil
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

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
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
