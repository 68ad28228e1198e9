package api

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/config"
	"github.com/news-aggregator-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

//go:embed endpoints.json
var endpointsJSON []byte

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware, outermost first. Recovery sits inside logging and metrics
	// so that recovered panics are recorded as 500s.
	router.Use(requestIDMiddleware())
	router.Use(metricsMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(recoveryMiddleware(log))
	router.Use(errorMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowOrigin))
	if limiter := rateLimitMiddleware(cfg.RateLimit); limiter != nil {
		router.Use(limiter)
	}

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	userHandler := NewUserHandler(services, log)

	router.GET("/health", healthCheck(services))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("", listEndpoints)
		api.GET("/topics", userHandler.ListTopics)

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/:article_id", articleHandler.GetArticle)
			articles.PATCH("/:article_id", articleHandler.UpdateArticleVotes)
			articles.GET("/:article_id/comments", commentHandler.ListComments)
			articles.POST("/:article_id/comments", commentHandler.CreateComment)
		}

		api.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

		api.GET("/users", userHandler.ListUsers)
		api.GET("/users/:username", userHandler.GetUser)
	}

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.New(apperror.KindRouteNotFound, apperror.MsgRouteNotFound))
	})

	return router
}

// listEndpoints serves the embedded endpoint catalog
func listEndpoints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"endpoints": json.RawMessage(endpointsJSON)})
}

// healthCheck returns the health status and table sizes
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := services.Health.Check(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, report)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
