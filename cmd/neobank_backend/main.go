package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	"github.com/SscSPs/neobank_backend/internal/core/services"
	"github.com/SscSPs/neobank_backend/internal/handlers"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/SscSPs/neobank_backend/internal/platform/config"
	"github.com/SscSPs/neobank_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/neobank_backend/internal/repositories/memory"
	"github.com/SscSPs/neobank_backend/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title NeoBank Backend API
// @version 1.0
// @description Customer accounts, P2P transfers and spending insights.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var cache redis.Cmdable
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		cache = client
	} else {
		logger.Warn("REDIS_URL not set, transfer idempotency keys are ignored")
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, nil)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, cache)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore builds the repositories for the configured driver and returns a
// cleanup func.
func openStore(ctx context.Context, cfg *config.Config) (repositories.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		slog.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return repositories.RepositoryProvider{}, nil, err
	}

	slog.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		dbPool.Close()
		return repositories.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return slog.LevelInfo
	}
	return l
}
