// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"listingseo/internal/adapter/events"
	"listingseo/internal/adapter/storage"
	"listingseo/internal/config"
	"listingseo/internal/domain/listing"
	"listingseo/internal/logger"
	"listingseo/internal/server"
	"listingseo/internal/server/handlers"
	"listingseo/internal/service/analysis"
	"listingseo/internal/service/session"
	"listingseo/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize storage
	store, err := initStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize result store", logger.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	// Initialize event publishing
	publisher, closeEvents, err := initEvents(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to NATS", logger.Error(err))
		os.Exit(1)
	}
	defer closeEvents()

	// Initialize services
	analyzer := analysis.NewAnalyzer(analysis.AnalyzerConfig{
		Delay: cfg.Analysis.Delay,
		Seed:  cfg.Analysis.Seed,
	}, appLogger.With(logger.String("component", "analyzer")))

	sessions := session.NewManager(store, session.ManagerConfig{
		TTL: cfg.Store.TTL,
	})

	metrics := telemetry.NewMetrics()

	analysisHandler := handlers.NewAnalysisHandler(
		analyzer,
		sessions,
		publisher,
		metrics,
		handlers.CookieConfig{
			TTL:    cfg.Store.TTL,
			Secure: cfg.Server.CookieSecure,
		},
		appLogger.With(logger.String("component", "http")),
	)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, analysisHandler, metrics)

	// Start HTTP server
	go func() {
		appLogger.Info("Starting HTTP server",
			logger.String("addr", cfg.Server.Addr()),
			logger.String("store", cfg.Store.Backend),
			logger.String("env", cfg.Environment),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server error", logger.Error(err))
			shutdown <- syscall.SIGTERM
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	appLogger.Info("Shutdown signal received")
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", logger.Error(err))
	}

	appLogger.Info("Shutdown complete")
}

// initStore opens the configured result store backend
func initStore(ctx context.Context, cfg config.Config, log logger.Logger) (listing.ResultStore, error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		client, err := storage.NewRedisClient(storage.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Using redis result store", logger.String("address", cfg.Redis.Address))
		return storage.NewRedisStore(client, cfg.Store.KeyPrefix), nil

	case config.StorePostgres:
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}

		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}

		go purgeExpired(ctx, store, cfg.Store.CleanupInterval, log)

		log.Info("Using postgres result store", logger.String("host", cfg.Database.Host))
		return store, nil

	default:
		log.Info("Using in-memory result store")
		return storage.NewMemoryStore(cfg.Store.CleanupInterval), nil
	}
}

// purgeExpired periodically deletes expired rows until ctx is cancelled
func purgeExpired(ctx context.Context, store *storage.PostgresStore, interval time.Duration, log logger.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Warn("Failed to purge expired session values", logger.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("Purged expired session values", logger.Int("count", int(n)))
			}
		}
	}
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// initEvents returns the analysis event publisher and its cleanup function
func initEvents(cfg config.NATSConfig, log logger.Logger) (listing.EventPublisher, func(), error) {
	if cfg.URL == "" {
		log.Info("NATS_URL not set, analysis events disabled")
		return events.NopPublisher{}, func() {}, nil
	}

	nc, err := events.Connect(events.NATSConfig{
		URL:            cfg.URL,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectTimeout: cfg.ConnectTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	publisher := events.NewNATSPublisher(nc, cfg.EventsTopic)
	log.Info("Publishing analysis events", logger.String("subject", publisher.Subject()))

	return publisher, func() {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
	}, nil
}
