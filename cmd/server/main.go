package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imageon/fedipost/configs"
	"github.com/imageon/fedipost/internal/application/services"
	"github.com/imageon/fedipost/internal/core/ports"
	"github.com/imageon/fedipost/internal/infrastructure/db"
	"github.com/imageon/fedipost/internal/infrastructure/health"
	"github.com/imageon/fedipost/internal/infrastructure/httpserver"
	"github.com/imageon/fedipost/internal/infrastructure/redis"
	"github.com/imageon/fedipost/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting fedipost...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Provision the posts table and secondary index
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Redis is optional: the service keeps working without a cache, every
	// read falls through to the database.
	var postCache ports.Cache
	var rateLimiter ports.RateLimiterService
	healthCheckers := []ports.HealthChecker{health.NewDBHealthChecker(database)}

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis not available, continuing without cache")
	} else {
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")
		postCache = redis.NewRedisCache(redisClient, "fedipost")
		rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)
		rateLimiter = services.NewRateLimiterService(rateLimitRepo, &services.RateLimiterConfig{
			PostsPerMinute: cfg.RateLimit.PostsPerMinute,
			Window:         cfg.RateLimit.Window,
			KeyPrefix:      cfg.RateLimit.KeyPrefix,
		}, logger)
		healthCheckers = append(healthCheckers, health.NewRedisHealthChecker(redisClient))
	}

	// Repositories: durable store wrapped with the caching decorator
	basePostRepo := repositories.NewPostRepository(database, logger)
	postRepo := repositories.NewCachingPostRepository(basePostRepo, postCache, cfg.Cache.PostTTL, cfg.Cache.ListTTL, logger)

	postService := services.NewPostService(postRepo, cfg.Server.BaseURL, logger)

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		BaseURL:      cfg.Server.BaseURL,
	}

	deps := httpserver.ServerDeps{
		PostService:        postService,
		RateLimiterService: rateLimiter,
		HealthCheckers:     healthCheckers,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
