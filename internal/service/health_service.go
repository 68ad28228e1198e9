package service

import (
	"context"
	"fmt"
	"time"

	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/repository"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// healthService is the concrete implementation of HealthService
type healthService struct {
	repos *repository.Repositories
	db    Pinger
	log   zerolog.Logger
}

func newHealthService(repos *repository.Repositories, db Pinger, log zerolog.Logger) *healthService {
	return &healthService{
		repos: repos,
		db:    db,
		log:   log.With().Str("service", "health").Logger(),
	}
}

// Check pings the database and collects row counts. The report is always
// returned; the error is set when the database is unreachable.
func (s *healthService) Check(ctx context.Context) (*models.HealthReport, error) {
	report := &models.HealthReport{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
		Service:   models.ServiceName,
	}

	if err := s.db.HealthCheck(ctx); err != nil {
		s.log.Error().Err(err).Msg("Database health check failed")
		report.Status = StatusUnhealthy
		return report, fmt.Errorf("ping database: %w", err)
	}

	counters := []struct {
		table string
		count func(context.Context) (int, error)
	}{
		{"topics", s.repos.Topic.Count},
		{"users", s.repos.User.Count},
		{"articles", s.repos.Article.Count},
		{"comments", s.repos.Comment.Count},
	}

	report.Database = make(map[string]int, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			// Counts are informational only
			s.log.Warn().Err(err).Str("table", c.table).Msg("Failed to count rows")
			continue
		}
		report.Database[c.table] = n
	}

	return report, nil
}
