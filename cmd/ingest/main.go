package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sortiment/internal/config"
	"sortiment/internal/ingest"
	"sortiment/internal/model"
	"sortiment/internal/observability"
	"sortiment/internal/repository"
)

// go run ./cmd/ingest -feed=Sortimentsfilen.xml -db=sortiment.db
// go run ./cmd/ingest -feed=https://www.systembolaget.se/api/assortment/products/xml
func main() {
	cfg := config.Load()

	feedSource := flag.String("feed", cfg.FeedSource, "feed file path or http(s) URL")
	dsn := flag.String("db", cfg.DatabaseURL, "SQLite file or postgres:// URL")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.LogLevel, "ingest")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("run_id", uuid.NewString()))

	if cfg.MetricsPort != "" {
		srv := observability.Start(cfg.MetricsPort, logger)
		defer srv.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := model.DefaultRegistry()
	loader := repository.NewLoader(*dsn, registry, logger)
	runner := ingest.NewRunner(*feedSource, cfg.FeedTimeout, registry, loader, logger)

	if _, err := runner.Run(ctx); err != nil {
		logger.Error("ingestion failed", zap.Error(err))
		// deferred calls do not run after os.Exit
		logger.Sync()
		os.Exit(1)
	}
}
