package main

import (
	"context"
	"os"
	"time"

	"conduit-backend/internal/config"
	tagrepository "conduit-backend/internal/domains/tag/repository"
	tagservice "conduit-backend/internal/domains/tag/service"
	userrepository "conduit-backend/internal/domains/user/repository"
	"conduit-backend/internal/infrastructure/cache"
	"conduit-backend/internal/infrastructure/database"
	"conduit-backend/internal/infrastructure/queue"
	"conduit-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger.Init(envName())

	cfg, err := config.Load()
	if err != nil {
		logger.Error("worker startup: load config", err)
		os.Exit(1)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		logger.Error("worker startup: load database config", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		cancel()
		logger.Error("worker startup: connect database", err)
		os.Exit(1)
	}
	defer db.Close()

	redisCache := cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		cancel()
		logger.Error("worker startup: connect redis", err)
		os.Exit(1)
	}
	defer redisCache.Close()
	cancel()

	userRepo := userrepository.NewPostgresRepository(db.Pool)
	tagRepo := tagrepository.NewPostgresRepository(db.Pool)
	tagSvc := tagservice.NewTagService(tagRepo, redisCache)

	handlers := NewTaskHandlers(userRepo, tagSvc)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeArticleNotify, handlers.HandleArticleNotify)
	mux.HandleFunc(queue.TypeTagRefreshPopular, handlers.HandleTagRefreshPopular)

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.Register(); err != nil {
		logger.Error("worker startup: register scheduled tasks", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Error("worker startup: start scheduler", err)
		os.Exit(1)
	}
	defer scheduler.Shutdown()

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	logger.Info("worker starting", map[string]interface{}{
		"env":         cfg.App.Environment,
		"concurrency": 10,
	})

	// Run blocks and handles SIGINT/SIGTERM itself.
	if err := server.Run(mux); err != nil {
		logger.Error("worker stopped unexpectedly", err)
		os.Exit(1)
	}
}

func envName() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
