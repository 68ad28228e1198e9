package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/news-aggregator-api/internal/repository"
	"github.com/rs/zerolog"
)

// DefaultBatchSize bounds the rows sent per COPY statement
const DefaultBatchSize = 1000

// Summary reports how many rows were inserted per table
type Summary struct {
	Topics   int
	Users    int
	Articles int
	Comments int
	Duration time.Duration
}

// Total returns the number of rows inserted across all tables
func (s Summary) Total() int {
	return s.Topics + s.Users + s.Articles + s.Comments
}

// Run inserts ds into empty tables in dependency order. It expects fresh
// SERIAL sequences so that article ids match the dataset's positions.
func Run(ctx context.Context, repos *repository.Repositories, ds *Dataset, log zerolog.Logger) (*Summary, error) {
	log = log.With().Str("component", "seed").Logger()
	start := time.Now()
	summary := &Summary{}
	var err error

	if summary.Topics, err = insertBatches(ctx, ds.Topics, repos.Topic.BatchInsert); err != nil {
		return summary, fmt.Errorf("seed topics: %w", err)
	}
	if summary.Users, err = insertBatches(ctx, ds.Users, repos.User.BatchInsert); err != nil {
		return summary, fmt.Errorf("seed users: %w", err)
	}
	if summary.Articles, err = insertBatches(ctx, ds.Articles, repos.Article.BatchInsert); err != nil {
		return summary, fmt.Errorf("seed articles: %w", err)
	}
	if summary.Comments, err = insertBatches(ctx, ds.Comments, repos.Comment.BatchInsert); err != nil {
		return summary, fmt.Errorf("seed comments: %w", err)
	}

	summary.Duration = time.Since(start)
	var rowsPerSec float64
	if summary.Duration.Seconds() > 0 {
		rowsPerSec = float64(summary.Total()) / summary.Duration.Seconds()
	}

	log.Info().
		Int("topics", summary.Topics).
		Int("users", summary.Users).
		Int("articles", summary.Articles).
		Int("comments", summary.Comments).
		Int64("duration_ms", summary.Duration.Milliseconds()).
		Float64("rows_per_sec", rowsPerSec).
		Msg("Seed completed")

	return summary, nil
}

// insertBatches feeds rows to insert in chunks of DefaultBatchSize
func insertBatches[T any](ctx context.Context, rows []*T, insert func(context.Context, []*T) (int, error)) (int, error) {
	total := 0
	for start := 0; start < len(rows); start += DefaultBatchSize {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		end := start + DefaultBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		inserted, err := insert(ctx, rows[start:end])
		if err != nil {
			return total, err
		}
		total += inserted
	}
	return total, nil
}
