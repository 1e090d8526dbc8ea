package handlers

import (
	"fmt"

	"github.com/SscSPs/rjb_tranz/cmd/docs"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/SscSPs/rjb_tranz/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}
	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	v1 := r.Group("/api/v1", middleware.RateLimit(apiLimiter))

	// Public routes
	registerAuthRoutes(v1, middleware.RateLimit(loginLimiter), services)
	registerReferenceRoutes(v1, middleware.NewResponseCache(cfg.ReferenceCacheTTL, cfg.DevHostnames))
	registerRateRoutes(v1, services.Rates)

	// Operator routes
	setupOperatorRoutes(v1, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupOperatorRoutes configures the routes that require an operator token.
func setupOperatorRoutes(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	op := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	registerRateOperatorRoutes(op, services.Rates)
	registerConversionRoutes(op, services.Conversion)
	registerWizardRoutes(op, services.Wizard)
	registerTransactionRoutes(op, services.Transaction, services.Receipt, services.Analytics)
	registerNotificationRoutes(op, services.Notification)
	registerSettingsRoutes(op, services.Settings)
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
