package handlers

import (
	"log/slog"

	"github.com/SscSPs/neobank_backend/cmd/docs"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/SscSPs/neobank_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. cache may be nil, in which
// case transfers are not deduplicated.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	cache redis.Cmdable,
) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			slog.Error("Failed to register request validators", slog.String("error", err.Error()))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := r.Group("/api/v1")
	showDetails := !cfg.IsProduction

	// Public routes
	registerAuthRoutes(api, services.User, services.Token, showDetails)
	registerDirectoryRoutes(api, services.Resolver, showDetails)

	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	registerPINRoutes(protected, services.User, showDetails)
	registerUserRoutes(protected, services.User, showDetails)

	var transferGuards []gin.HandlerFunc
	if cache != nil {
		transferGuards = append(transferGuards, middleware.Idempotency(cache, cfg.IdempotencyTTL))
	}
	registerTransferRoutes(protected, services.Transfer, showDetails, transferGuards...)
	registerTransactionRoutes(protected, services.Transaction, showDetails)
	registerInsightRoutes(protected, services.Insight, showDetails)
	registerAccountRoutes(protected, services.Account, showDetails)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
