package main

import (
	"context"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/core/services"
	"github.com/SscSPs/currency_convertor/internal/handlers"
	"github.com/SscSPs/currency_convertor/internal/middleware"
	"github.com/SscSPs/currency_convertor/internal/platform/config"
	"github.com/SscSPs/currency_convertor/internal/repositories"
	"github.com/gin-gonic/gin"
)

// @title Currency Convertor API
// @version 1.0
// @description Currency conversion form served over HTTP.

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

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	repos, closeStore, err := repositories.NewRepositoryProvider(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", slog.String("store_driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	serviceContainer := services.NewServiceContainer(repos, logger,
		services.WithStorageKeys(cfg.StateKey, cfg.RatesKey),
		services.WithStoreTimeout(cfg.StoreTimeout),
	)
	if starter, ok := serviceContainer.ConversionForm.(portssvc.Starter); ok {
		if err := starter.Start(ctx); err != nil {
			logger.Error("Failed to start conversion form", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

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

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, logger); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store_driver", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}
}
