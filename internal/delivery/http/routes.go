package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuscraper/backend/config"
	"github.com/menuscraper/backend/internal/infrastructure/cache"
)

// limiterTTL is how long an idle client's rate limiter is kept
const limiterTTL = 10 * time.Minute

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cache.NewLimiterCache(cfg.RateLimit.PerIP, limiterTTL)))
	}

	router.GET("/health", handler.HealthCheck)

	// Catalog endpoints
	router.GET("/all_products/", handler.GetAllProducts)
	products := router.Group("/products")
	{
		products.GET("/:name", handler.GetProduct)
		products.GET("/:name/:field", handler.GetProductField)
	}

	return router
}
