package handlers

import (
	"fmt"
	"log/slog"

	_ "github.com/SscSPs/currency_convertor/cmd/docs"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/middleware"
	"github.com/SscSPs/currency_convertor/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	logger *slog.Logger,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("registering validators: %w", err)
	}

	// Add health check route
	r.GET("/health", getHealth)

	// HTML form
	r.SetHTMLTemplate(loadTemplates())
	registerFormRoutes(r, services.ConversionForm)

	if err := setupAPIV1Routes(r, cfg, services, logger); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	logger *slog.Logger,
) error {
	limiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1", cors.New(corsConfig(cfg)), middleware.RateLimit(limiter))

	var adminAuth gin.HandlerFunc
	if cfg.AdminJWTSecret != "" {
		adminAuth = middleware.AdminAuthMiddleware(cfg.AdminJWTSecret)
	} else {
		logger.Warn("Admin secret not configured, rate update route disabled")
	}

	registerConversionRoutes(v1, service.ConversionForm)
	registerRatesRoutes(v1, service.ConversionForm, adminAuth)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	c.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
