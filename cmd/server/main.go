// Package main provides the API server entry point for the event monitor service.
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

	"github.com/event-monitor/internal/adapter"
	"github.com/event-monitor/internal/api"
	"github.com/event-monitor/internal/catalog"
	"github.com/event-monitor/internal/config"
	"github.com/event-monitor/internal/logging"
	"github.com/event-monitor/internal/service"
	"github.com/event-monitor/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logging.InitGlobalLogger(logging.ParseLogLevel(cfg.Logging.Level), logging.ParseLogFormat(cfg.Logging.Format))
	logger := logging.GetGlobalLogger()
	defer logger.Sync()

	logger.WithFields(map[string]interface{}{
		"level":   cfg.Logging.Level,
		"format":  cfg.Logging.Format,
		"backend": cfg.Storage.Backend,
	}).Info("Event monitor starting")

	if cfg.Session.Secret == "" {
		logger.Fatal("SESSION_SECRET must be set")
	}

	// Durable per-user store
	var kv storage.KeyValueStore
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Postgres")
		}
		defer postgres.Close()
		kv = storage.NewPostgresStore(postgres)
	default:
		redis, err := storage.NewRedisStore(&cfg.Database.Redis)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redis.Close()
		kv = redis
	}

	// Optional save history archive
	var archive service.HistoryArchive
	if cfg.History.ArchiveEnabled {
		clickhouse, err := storage.NewClickHouseDB(&cfg.Database.ClickHouse)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to ClickHouse")
		}
		defer clickhouse.Close()
		archive = storage.NewHistoryArchive(clickhouse)
		logger.Info("Save history archive enabled")
	}

	// External mirror
	var mirror service.Mirror = service.NoopMirror{}
	if cfg.Mirror.Endpoint != "" {
		mirror = adapter.NewMirrorClient(cfg.Mirror)
		logger.WithField("endpoint", cfg.Mirror.Endpoint).Info("Mirroring preference snapshots")
	}

	// Event catalog
	events := catalog.Static()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load event catalog")
		}
		events = loaded
	}
	cat := catalog.New(events)
	logger.WithField("events", cat.Len()).Info("Event catalog loaded")

	var refresher *catalog.Refresher
	if cfg.Catalog.Path != "" && cfg.Catalog.RefreshSchedule != "" {
		refresher, err = catalog.NewRefresher(cat, cfg.Catalog.Path, cfg.Catalog.RefreshSchedule, logger)
		if err != nil {
			logger.WithError(err).Fatal("Invalid catalog refresh schedule")
		}
		refresher.Start()
	}

	// Services
	preferences := service.NewPreferenceStore(kv, service.PreferenceStoreConfig{
		Namespace:     cfg.Storage.Namespace,
		Mirror:        mirror,
		Archive:       archive,
		MirrorTimeout: cfg.Mirror.Timeout,
		HistoryLimit:  cfg.History.Limit,
		Logger:        logger,
	})
	filter := service.NewEventFilterService(cat, preferences)
	accounts := service.NewAccountService(kv, preferences.Keys(), cfg.Session.Secret, cfg.Session.TTL)

	serverConfig := &api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRPS:    cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:  cfg.RateLimit.Burst,
	}

	server := api.NewServer(serverConfig, preferences, filter, accounts, logger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if refresher != nil {
		refresher.Stop()
	}

	// Let in-flight mirror pushes finish; each is bounded by the mirror timeout
	preferences.WaitForMirrors()

	logger.Info("Server exited")
}

// compile-time checks that the adapters satisfy the service interfaces
var (
	_ service.Mirror         = (*adapter.MirrorClient)(nil)
	_ service.HistoryArchive = (*storage.HistoryArchive)(nil)
	_ storage.KeyValueStore  = (*storage.PostgresStore)(nil)
	_ storage.KeyValueStore  = (*storage.RedisStore)(nil)
	_ service.EventSource    = (*catalog.Catalog)(nil)
)
