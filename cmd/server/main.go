package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/deepdiver/funnelreport/internal/config"
	"github.com/deepdiver/funnelreport/internal/httpx"
	"github.com/deepdiver/funnelreport/internal/ingest"
	"github.com/deepdiver/funnelreport/internal/report"
	"github.com/deepdiver/funnelreport/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	var docs *store.Mongo
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		m, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoColl, logger)
		cancel()
		if err != nil {
			logger.Error("document store unavailable", slog.String("err", err.Error()))
			os.Exit(1)
		}
		docs = m
		defer docs.Close(context.Background())
	} else {
		logger.Warn("document store disabled, MONGO_URI not set")
	}

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	snap := store.NewSnapshot()
	ing := ingest.NewService(cl, docs, snap, logger, cfg)
	rpt := report.NewService(snap, logger)

	r := httpx.NewRouter(logger, ing, rpt, snap, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
