package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cableworks/storefront/config"
	"github.com/cableworks/storefront/internal/observability"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware(metrics))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
		}

		compare := v1.Group("/compare")
		compare.Use(SessionMiddleware(cfg.Server.SecureCookies))
		{
			compare.GET("", handler.CompareIndicator)
			compare.GET("/picker", handler.ComparePicker)
			compare.GET("/matrix", handler.CompareMatrix)
			compare.POST("/items", handler.AddCompareItem)
			compare.DELETE("/items", handler.ClearCompare)
			compare.DELETE("/items/:id", handler.RemoveCompareItem)
			compare.POST("/items/:id/toggle", handler.ToggleCompareItem)
			compare.POST("/items/:id/cart", handler.AddComparedToCart)
		}

		cart := v1.Group("/cart")
		cart.Use(SessionMiddleware(cfg.Server.SecureCookies))
		{
			cart.GET("", handler.GetCart)
		}
	}

	return router
}
