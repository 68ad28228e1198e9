package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/news-aggregator-api/internal/config"
	"github.com/news-aggregator-api/internal/database"
	"github.com/news-aggregator-api/internal/repository"
	"github.com/news-aggregator-api/internal/seed"
	"github.com/news-aggregator-api/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	dataDir := flag.String("data", "", "directory holding topics.json, users.json, articles.json and comments.json (default: embedded test data)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log)

	var source fs.FS = seed.TestData
	if *dataDir != "" {
		source = os.DirFS(*dataDir)
	}

	ds, err := seed.LoadDataset(source)
	if err != nil {
		log.Fatal().Err(err).Str("data", *dataDir).Msg("Failed to load dataset")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.ResetSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to reset schema")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := seed.Run(ctx, repository.New(db), ds, log); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}
