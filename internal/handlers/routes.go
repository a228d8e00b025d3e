package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"homedesigns-gateway/internal/middleware"
)

// Route names relative to the configured prefix
const (
	SubmitRoute = "/perfect-redesign"
	StatusRoute = "/perfect-redesign-status"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Upstream    Upstream
	APIKey      string
	RoutePrefix string
	Version     string
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	redesignHandler := NewRedesignHandler(config.Upstream, config.APIKey)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "homedesigns-gateway",
			"version":    config.Version,
			"timestamp":  time.Now().UTC(),
			"configured": config.APIKey != "",
		})
	})

	// Method checks and preflight happen inside the handlers
	api := router.Group(config.RoutePrefix)
	{
		api.Any(SubmitRoute, redesignHandler.SubmitRedesign)
		api.Any(StatusRoute, redesignHandler.RedesignStatus)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, maxBodyBytes int64, slowRequest time.Duration) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(maxBodyBytes))
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.PerformanceMonitor(slowRequest))
	router.Use(middleware.ErrorTracker())
}
