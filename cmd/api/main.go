package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"retail-concierge/internal/catalog"
	"retail-concierge/internal/config"
	"retail-concierge/internal/database"
	"retail-concierge/internal/logger"
	"retail-concierge/internal/profile"
	"retail-concierge/internal/repository"
	"retail-concierge/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting retail concierge API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Catalog and profiles come from Postgres when configured, otherwise
	// from the static seed.
	cat := catalog.Seed()
	var profiles profile.Store = profile.NewSeededStore()

	if cfg.Database.Enabled() {
		dbService, err := database.New(cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer dbService.Close()

		log.Info("Database health check", zap.Any("health", dbService.Health(ctx)))

		if err := database.RunMigrations(dbService.DB(), "migrations", log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}

		cat, err = loadCatalog(ctx, repository.NewCatalogRepository(dbService.DB()))
		if err != nil {
			log.Fatal("Failed to load catalog", zap.Error(err))
		}
		log.Info("Catalog loaded from database", zap.Int("products", cat.Len()))

		profiles = repository.NewProfileRepository(dbService.DB())
	}

	// Redis enables rate limiting and persistent kv storage.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
	}

	// Create server
	srv := server.NewServer(cfg, log, cat, profiles, redisClient)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}

// loadCatalog reads the catalog from the database, seeding it with the
// static products on first run.
func loadCatalog(ctx context.Context, repo repository.CatalogRepository) (*catalog.Catalog, error) {
	products, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		seed := catalog.Seed().Products()
		for i, product := range seed {
			if err := repo.Upsert(ctx, &product, i); err != nil {
				return nil, err
			}
		}
		products = seed
	}

	return catalog.New(products), nil
}
