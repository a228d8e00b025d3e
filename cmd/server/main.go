package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homedesigns-gateway/internal/config"
	"homedesigns-gateway/internal/handlers"
	"homedesigns-gateway/internal/logging"
	"homedesigns-gateway/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Setup(cfg.Log); err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}
	log := logging.Base()

	// Initialize dependencies
	container, err := server.NewContainer(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, cfg.MaxBodyBytes, cfg.SlowRequest)
	handlers.SetupRoutes(router, &handlers.RouterConfig{
		Upstream:    container.HDAI,
		APIKey:      container.APIKey(),
		RoutePrefix: cfg.RoutePrefix,
		Version:     "1.0.0",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":         cfg.Port,
		"route_prefix": cfg.RoutePrefix,
		"environment":  cfg.Environment,
	}).Info("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Upstream calls can take up to the HDAI timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HDAI.Timeout()+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return
	}

	log.Info("Server exited")
}
