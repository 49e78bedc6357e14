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

	"github.com/SAP-F-2025/gradable-block-service/internal/config"
	"github.com/SAP-F-2025/gradable-block-service/internal/events"
	"github.com/SAP-F-2025/gradable-block-service/internal/handlers"
	"github.com/SAP-F-2025/gradable-block-service/internal/render"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories/casdoor"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/gradable-block-service/internal/services"
	"github.com/SAP-F-2025/gradable-block-service/internal/utils"
	"github.com/SAP-F-2025/gradable-block-service/internal/validator"
	"github.com/SAP-F-2025/gradable-block-service/pkg"
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
			logger.Warn("Redis unavailable, running without cache", "error", err)
			redisClient = nil
		}
	}

	// Initialize repositories
	repoConfig := postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		CasdoorConfig: casdoor.CasdoorConfig{
			Endpoint:         cfg.Casdoor.Endpoint,
			ClientID:         cfg.Casdoor.ClientID,
			ClientSecret:     cfg.Casdoor.ClientSecret,
			Certificate:      cfg.Casdoor.Cert,
			OrganizationName: cfg.Casdoor.Organization,
			ApplicationName:  cfg.Casdoor.Application,
		},
	}
	repoManager := postgres.NewRepositoryManager(repoConfig)
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize validator
	validator := validator.New()

	renderer, err := render.NewRenderer(handlers.AssetPath)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	// Events go to Kafka when brokers are configured
	var publisher events.EventPublisher
	if cfg.Kafka.Enabled() {
		publisher, err = events.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, events are delivered in-process only")
		publisher = events.NewChannelEventPublisher(cfg.Kafka.Topic, slogLogger)
	}

	// Initialize services
	serviceManager := services.NewServiceManager(repoManager.GetRepository(), slogLogger, validator, services.ServiceManagerConfig{
		Renderer:  renderer,
		Publisher: publisher,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger, cfg, repoManager.GetRepository().User())

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

	// Shutdown services
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Close database and Redis connections
	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	logger.Info("Server exited")
}
