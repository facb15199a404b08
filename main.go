package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/iotlab-kiit/registration-service/internal/auth"
	"github.com/iotlab-kiit/registration-service/internal/cache"
	"github.com/iotlab-kiit/registration-service/internal/config"
	"github.com/iotlab-kiit/registration-service/internal/handlers"
	"github.com/iotlab-kiit/registration-service/internal/notifier"
	"github.com/iotlab-kiit/registration-service/internal/repositories/mongodb"
	"github.com/iotlab-kiit/registration-service/internal/services"
	"github.com/iotlab-kiit/registration-service/internal/utils"
	"github.com/iotlab-kiit/registration-service/internal/validator"
	"github.com/iotlab-kiit/registration-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repository and indexes
	repo := mongodb.NewMongoRepository(db)
	if err := repo.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize services
	brevoClient := notifier.New(cfg.Brevo)
	cacheHelper := cache.NewCacheHelper(redisClient, cache.DashboardCacheConfig.Prefix)
	serviceManager := services.NewDefaultServiceManager(repo.Registration(), brevoClient, cacheHelper, validator, logger)

	// Initialize session auth
	credentials := auth.NewCredentials(cfg.AdminAccounts)
	tokens := auth.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, credentials, tokens, cfg.SessionTTL, validator, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := repo.Close(ctx); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
