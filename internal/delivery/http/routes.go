package http

import (
	"github.com/gin-gonic/gin"
	"github.com/menuscan/backend/config"
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
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		menus := v1.Group("/menus")
		{
			menus.POST("/parse", handler.ParseMenuUpload)
			menus.POST("/parse-text", handler.ParseMenuText)
			menus.POST("/validate", handler.ValidateMenu)
		}
	}

	return router
}
