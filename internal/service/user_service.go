package service

import (
	"context"
	"fmt"

	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/repository"
	"github.com/rs/zerolog"
)

// topicService is the concrete implementation of TopicService
type topicService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newTopicService(repos *repository.Repositories, log zerolog.Logger) *topicService {
	return &topicService{
		repos: repos,
		log:   log.With().Str("service", "topic").Logger(),
	}
}

func (s *topicService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	topics, err := s.repos.Topic.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// userService is the concrete implementation of UserService
type userService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newUserService(repos *repository.Repositories, log zerolog.Logger) *userService {
	return &userService{
		repos: repos,
		log:   log.With().Str("service", "user").Logger(),
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.MsgUserNotFound)
	}
	return user, nil
}
