// Package main is the entry point for the trip-feed-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
	"trip-feed-service/internal/config"
	"trip-feed-service/internal/domain"
	"trip-feed-service/internal/infra/authclient"
	"trip-feed-service/internal/infra/postgres"
	"trip-feed-service/internal/infra/postgres/migrations"
	rediscache "trip-feed-service/internal/infra/redis"
	"trip-feed-service/internal/job"
	"trip-feed-service/internal/logger"
	"trip-feed-service/internal/transport/httpserver"
	"trip-feed-service/internal/validator"
	"trip-feed-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting trip-feed-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	// Auth collaborator client
	authClient := authclient.New(
		authclient.ClientConfig{
			BaseURL: cfg.Auth.BaseURL,
			Timeout: cfg.Auth.Timeout,
			Retry: authclient.RetryConfig{
				MaxAttempts: cfg.Auth.Retry.MaxAttempts,
				WaitTime:    cfg.Auth.Retry.WaitTime,
				MaxWaitTime: cfg.Auth.Retry.MaxWaitTime,
			},
			CB: authclient.CBConfig{
				MaxRequests:  cfg.Auth.CB.MaxRequests,
				Interval:     cfg.Auth.CB.Interval,
				Timeout:      cfg.Auth.CB.Timeout,
				FailureRatio: cfg.Auth.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient, err := rediscache.NewClient(rediscache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("ranking_ttl", cfg.Cache.RankingTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create services
	feedSvc := service.NewFeedService(repo, log.Logger)
	rankingSvc := service.NewRankingService(repo, repo, repo, repo, cache, cfg.Cache.RankingTTL, log.Logger)
	proximitySvc := service.NewProximityService(repo, log.Logger)
	recommendSvc := service.NewRecommendService(repo, proximitySvc, rankingSvc, nil, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		feedSvc,
		rankingSvc,
		recommendSvc,
		proximitySvc,
		authClient,
		db,
		v,
		log.Logger,
	)

	// Start ranking refresher with distributed locking
	refresher := job.NewRankingRefresher(
		rankingSvc,
		job.RefreshConfig{
			Interval:  cfg.Refresh.Interval,
			Timeout:   cfg.Refresh.Timeout,
			OnStartup: cfg.Refresh.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	refresher.Start(cfg.Refresh.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		refresher.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
