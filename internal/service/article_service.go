package service

import (
	"context"
	"fmt"

	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
	}
}

// GetArticleByID returns a single article with its comment count
func (s *articleService) GetArticleByID(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if article == nil {
		return nil, apperror.NotFound(apperror.MsgNotFound)
	}
	return article, nil
}

// ListArticles returns article summaries in the requested order. An empty
// result for a topic filter is a 404 only when the topic itself is unknown.
func (s *articleService) ListArticles(ctx context.Context, q models.ArticleQuery) ([]models.ArticleSummary, error) {
	articles, err := s.repos.Article.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	if len(articles) == 0 && q.Topic != "" {
		exists, err := s.repos.Topic.Exists(ctx, q.Topic)
		if err != nil {
			return nil, fmt.Errorf("check topic %q: %w", q.Topic, err)
		}
		if !exists {
			return nil, apperror.NotFound(apperror.MsgTopicNotFound)
		}
	}

	return articles, nil
}

// UpdateArticleVotes applies a relative vote delta
func (s *articleService) UpdateArticleVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	article, err := s.repos.Article.IncrementVotes(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("update votes for article %d: %w", id, err)
	}
	if article == nil {
		return nil, apperror.NotFound(apperror.MsgArticleNotFound)
	}

	s.log.Debug().
		Int("article_id", id).
		Int("inc_votes", delta).
		Int("votes", article.Votes).
		Msg("Article votes updated")

	return article, nil
}
