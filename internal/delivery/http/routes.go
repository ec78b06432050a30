package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	limited := RateLimitMiddleware(cfg.RateLimit.PerIP)

	// Root paths are the contract existing clients call
	registerProductRoutes(router.Group("/", limited), handler)
	registerProductRoutes(router.Group("/api/v1", limited), handler)

	return router
}

func registerProductRoutes(group *gin.RouterGroup, handler *Handler) {
	group.POST("/search", handler.Search)
	group.POST("/productInfo", handler.ProductInfo)
}
