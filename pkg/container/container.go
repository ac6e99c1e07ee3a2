package container

import (
	"context"
	"fmt"
	"time"

	"conduit-backend/internal/config"
	articlehandler "conduit-backend/internal/domains/article/handler"
	articlerepository "conduit-backend/internal/domains/article/repository"
	articleservice "conduit-backend/internal/domains/article/service"
	commenthandler "conduit-backend/internal/domains/comment/handler"
	commentrepository "conduit-backend/internal/domains/comment/repository"
	commentservice "conduit-backend/internal/domains/comment/service"
	"conduit-backend/internal/domains/tag"
	taghandler "conduit-backend/internal/domains/tag/handler"
	tagrepository "conduit-backend/internal/domains/tag/repository"
	tagservice "conduit-backend/internal/domains/tag/service"
	"conduit-backend/internal/domains/user"
	userhandler "conduit-backend/internal/domains/user/handler"
	userrepository "conduit-backend/internal/domains/user/repository"
	userservice "conduit-backend/internal/domains/user/service"
	"conduit-backend/internal/infrastructure/cache"
	"conduit-backend/internal/infrastructure/database"
	"conduit-backend/internal/infrastructure/queue"
	"conduit-backend/pkg/jwt"
	"conduit-backend/pkg/logger"
)

// Container owns every long-lived dependency of the API process and
// wires them together in dependency order.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *cache.RedisCache
	JWTManager *jwt.Manager
	Queue      *queue.Client

	// Repositories shared with the worker wiring.
	UserRepository user.Repository
	TagService     tag.Service

	UserHandler    *userhandler.UserHandler
	ArticleHandler *articlehandler.ArticleHandler
	CommentHandler *commenthandler.CommentHandler
	TagHandler     *taghandler.TagHandler
}

// NewContainer builds the dependency graph: config, database, cache,
// queue client, then repositories, services and handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.wireDomains()

	logger.Info("container initialized", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) wireDomains() {
	pool := c.DB.Pool

	userRepo := userrepository.NewPostgresRepository(pool)
	articleRepo := articlerepository.NewPostgresRepository(pool)
	commentRepo := commentrepository.NewPostgresRepository(pool)
	tagRepo := tagrepository.NewPostgresRepository(pool)

	c.UserRepository = userRepo

	userSvc := userservice.NewUserService(userRepo, c.JWTManager, c.Cache)
	articleSvc := articleservice.NewArticleService(articleRepo, c.Queue, c.Cache, c.Config.Article.SlugMaxLength)
	commentSvc := commentservice.NewCommentService(commentRepo, articleRepo)
	c.TagService = tagservice.NewTagService(tagRepo, c.Cache)

	c.UserHandler = userhandler.NewUserHandler(userSvc)
	c.ArticleHandler = articlehandler.NewArticleHandler(articleSvc)
	c.CommentHandler = commenthandler.NewCommentHandler(commentSvc)
	c.TagHandler = taghandler.NewTagHandler(c.TagService)
}

// Cleanup releases resources in reverse initialization order.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("cleanup: close queue client", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("cleanup: close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
