package service

import (
	"context"

	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	GetArticleByID(ctx context.Context, id int) (*models.Article, error)
	ListArticles(ctx context.Context, q models.ArticleQuery) ([]models.ArticleSummary, error)
	UpdateArticleVotes(ctx context.Context, id int, delta int) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListCommentsByArticle(ctx context.Context, articleID int) ([]models.Comment, error)
	InsertComment(ctx context.Context, articleID int, comment models.NewComment) (*models.Comment, error)
	DeleteCommentByID(ctx context.Context, id int) error
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// HealthService reports database reachability and table sizes
type HealthService interface {
	Check(ctx context.Context) (*models.HealthReport, error)
}

// Pinger is satisfied by *database.DB
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	Article ArticleService
	Comment CommentService
	User    UserService
	Health  HealthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, db Pinger, log zerolog.Logger) *Services {
	return &Services{
		Topic:   newTopicService(repos, log),
		Article: newArticleService(repos, log),
		Comment: newCommentService(repos, log),
		User:    newUserService(repos, log),
		Health:  newHealthService(repos, db, log),
	}
}
