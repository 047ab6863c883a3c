// Package ingest runs one feed ingestion: open, parse, load.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sortiment/internal/feed"
	"sortiment/internal/model"
	"sortiment/internal/repository"
)

type Runner struct {
	Source  string
	Timeout time.Duration
	Parser  *feed.Parser
	Loader  repository.Loader
	Logger  *zap.Logger
}

func NewRunner(source string, timeout time.Duration, registry *model.Registry, loader repository.Loader, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Source:  source,
		Timeout: timeout,
		Parser:  feed.NewParser(registry, logger),
		Loader:  loader,
		Logger:  logger.Named("ingest"),
	}
}

// Run replaces the stored catalog with the feed at r.Source. Nothing is
// written unless the whole feed parses.
func (r *Runner) Run(ctx context.Context) (*model.Catalog, error) {
	start := time.Now()
	r.Logger.Info("ingestion started", zap.String("source", r.Source))

	rc, err := feed.Open(ctx, r.Source, r.Timeout)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	catalog, err := r.Parser.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.Source, err)
	}

	if err := r.Loader.Load(ctx, catalog); err != nil {
		return nil, err
	}

	r.Logger.Info("ingestion finished",
		zap.String("created", catalog.Created),
		zap.Int("items", catalog.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return catalog, nil
}
