package service

import (
	"context"
	"fmt"

	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/repository"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) *commentService {
	return &commentService{
		repos: repos,
		log:   log.With().Str("service", "comment").Logger(),
	}
}

// ListCommentsByArticle returns an article's comments, newest first
func (s *commentService) ListCommentsByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	comments, err := s.repos.Comment.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments for article %d: %w", articleID, err)
	}
	if len(comments) > 0 {
		return comments, nil
	}

	exists, err := s.repos.Article.Exists(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("check article %d: %w", articleID, err)
	}
	if !exists {
		return nil, apperror.NotFound(apperror.MsgArticleNotFound)
	}
	return comments, nil
}

// InsertComment checks the article and then the author before inserting.
// The checks and the insert are not one transaction; a concurrent delete
// surfaces as a foreign key violation from the store.
func (s *commentService) InsertComment(ctx context.Context, articleID int, comment models.NewComment) (*models.Comment, error) {
	articleExists, err := s.repos.Article.Exists(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("check article %d: %w", articleID, err)
	}
	if !articleExists {
		return nil, apperror.NotFound(apperror.MsgArticleNotFound)
	}

	userExists, err := s.repos.User.Exists(ctx, comment.Username)
	if err != nil {
		return nil, fmt.Errorf("check user %q: %w", comment.Username, err)
	}
	if !userExists {
		return nil, apperror.NotFound(apperror.MsgUserNotFound)
	}

	created, err := s.repos.Comment.Create(ctx, articleID, comment)
	if err != nil {
		return nil, fmt.Errorf("insert comment on article %d: %w", articleID, err)
	}

	s.log.Info().
		Int("comment_id", created.CommentID).
		Int("article_id", articleID).
		Str("author", created.Author).
		Msg("Comment created")

	return created, nil
}

// DeleteCommentByID hard-deletes a comment
func (s *commentService) DeleteCommentByID(ctx context.Context, id int) error {
	deleted, err := s.repos.Comment.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	if !deleted {
		return apperror.NotFound(apperror.MsgCommentNotFound)
	}

	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}
