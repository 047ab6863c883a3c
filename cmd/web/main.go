package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sortiment/internal/api"
	"sortiment/internal/config"
	"sortiment/internal/link"
	"sortiment/internal/listing"
	"sortiment/internal/model"
	"sortiment/internal/observability"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.HTTPAddr, "listen address")
	dsn := flag.String("db", cfg.DatabaseURL, "SQLite file or postgres:// URL")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.LogLevel, "web")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	svc := listing.NewService(*dsn, model.DefaultRegistry(), link.NewBuilder(cfg.ProductHost), logger)
	e := api.NewServer(svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		if err := e.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
