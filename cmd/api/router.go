package main

import (
	"net/http"

	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"
	"conduit-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and the versioned API routes.
func SetupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler(c))

	jwtSecret := c.Config.JWT.Secret
	authenticated := middleware.AuthMiddleware(jwtSecret)
	optionalAuth := middleware.OptionalAuth(jwtSecret)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.UserHandler.Register)
			auth.POST("/login", c.UserHandler.Login)
			auth.POST("/refresh", c.UserHandler.RefreshToken)
		}

		userGroup := v1.Group("/user", authenticated)
		{
			userGroup.GET("", c.UserHandler.GetCurrentUser)
			userGroup.PUT("", c.UserHandler.UpdateSettings)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:username", optionalAuth, c.UserHandler.GetProfile)
			profiles.POST("/:username/follow", authenticated, c.UserHandler.Follow)
			profiles.DELETE("/:username/follow", authenticated, c.UserHandler.Unfollow)
		}

		articles := v1.Group("/articles")
		{
			articles.GET("", optionalAuth, c.ArticleHandler.List)
			articles.POST("", authenticated, c.ArticleHandler.Create)
			articles.GET("/feed", authenticated, c.ArticleHandler.Feed)

			articles.GET("/:slug", optionalAuth, c.ArticleHandler.GetBySlug)
			articles.PUT("/:slug", authenticated, c.ArticleHandler.Update)
			articles.DELETE("/:slug", authenticated, c.ArticleHandler.Delete)

			articles.POST("/:slug/favorite", authenticated, c.ArticleHandler.Favorite)
			articles.DELETE("/:slug/favorite", authenticated, c.ArticleHandler.Unfavorite)

			articles.GET("/:slug/comments", c.CommentHandler.List)
			articles.POST("/:slug/comments", authenticated, c.CommentHandler.Create)
			articles.DELETE("/:slug/comments/:id", authenticated, c.CommentHandler.Delete)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", c.TagHandler.List)
			tags.GET("/popular", c.TagHandler.Popular)
		}
	}

	return router
}

// healthHandler reports the API's view of its dependencies.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{
			"database": "ok",
			"redis":    "ok",
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		}

		if status != http.StatusOK {
			response.ErrorWithDetails(ctx, status, "UNHEALTHY", "dependency check failed", checks)
			return
		}

		response.Success(ctx, status, gin.H{
			"app":     c.Config.App.Name,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
