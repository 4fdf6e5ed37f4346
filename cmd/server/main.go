// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brianstore/store-backend/internal/config"
	"github.com/brianstore/store-backend/internal/database"
	"github.com/brianstore/store-backend/internal/middleware"
	"github.com/brianstore/store-backend/internal/persistence"
	"github.com/brianstore/store-backend/internal/router"
	"github.com/brianstore/store-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logger := logrus.StandardLogger()
	if err := cfg.Log.Apply(logger); err != nil {
		logrus.Fatal("Failed to configure logging: ", err)
	}

	// Initialize database when snapshots live in postgres
	var db *gorm.DB
	if cfg.Storage.Backend == config.StorageBackendPostgres {
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logrus.Fatal("Failed to initialize database: ", err)
		}
		defer database.Close(db)

		// Run database migrations
		if err := database.RunMigrations(db); err != nil {
			logrus.Fatal("Failed to run migrations: ", err)
		}
	}

	backend, err := persistence.NewBackend(cfg, db)
	if err != nil {
		logrus.Fatal("Failed to initialize storage backend: ", err)
	}

	// Initialize services
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	adapter := persistence.NewAdapter(backend)
	aiService := services.NewAIService(cfg)
	storeService := services.NewStoreService(startupCtx, adapter, aiService)
	integrationService := services.NewIntegrationService(storeService, cfg)
	cancelStartup()

	if !aiService.Enabled() {
		logrus.Warn("AI_API_KEY not set; assistant runs in offline mode")
	}

	rateLimiter := middleware.NewRateLimiterFromConfig(cfg.RateLimit)
	defer rateLimiter.Stop()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(cfg, router.Dependencies{
		Store:        storeService,
		AI:           aiService,
		Integrations: integrationService,
		RateLimiter:  rateLimiter,
		Logger:       logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    cfg.Server.Port,
			"storage": cfg.Storage.Backend,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exited")
}
