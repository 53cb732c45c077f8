package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/deepdiver/funnelreport/internal/config"
	"github.com/deepdiver/funnelreport/internal/models"
	"github.com/deepdiver/funnelreport/internal/report"
	"github.com/deepdiver/funnelreport/internal/store"
)

var (
	ingestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funnelreport_ingest_runs_total",
		Help: "Ingest runs, by source and outcome.",
	}, []string{"source", "outcome"})
	rowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "funnelreport_rows_ingested_total",
		Help: "Raw rows loaded across all ingest runs.",
	})
)

// Service pulls raw funnel rows from a source, persists them in the
// document store, and refreshes the report snapshot with the
// normalized population. Data acquisition finishes entirely before the
// engine runs over the snapshot.
type Service struct {
	c    HTTPClient
	docs *store.Mongo // nil when persistence is disabled
	snap *store.Snapshot
	log  *slog.Logger
	cfg  config.Config
}

func NewService(c HTTPClient, docs *store.Mongo, snap *store.Snapshot, log *slog.Logger, cfg config.Config) *Service {
	return &Service{c: c, docs: docs, snap: snap, log: log, cfg: cfg}
}

type RunResult struct {
	RunID     string `json:"run_id"`
	Source    string `json:"source"`
	RawRows   int    `json:"raw_rows"`
	Records   int    `json:"records"`
	Persisted int    `json:"persisted"`
}

// Run executes one ingest: load from the named source ("file" or
// "feed"), replace the stored collection, normalize, swap the snapshot.
func (s *Service) Run(ctx context.Context, source string) (RunResult, error) {
	res := RunResult{RunID: uuid.NewString(), Source: source}
	log := s.log.With(slog.String("run_id", res.RunID), slog.String("source", source))

	raws, err := s.load(ctx, source)
	if err != nil {
		ingestRuns.WithLabelValues(source, "error").Inc()
		return res, err
	}
	res.RawRows = len(raws)
	rowsIngested.Add(float64(len(raws)))

	if s.docs != nil {
		n, err := s.docs.ReplaceAll(ctx, raws)
		if err != nil {
			ingestRuns.WithLabelValues(source, "error").Inc()
			return res, err
		}
		res.Persisted = n
	}

	recs, err := report.Normalize(raws)
	if err != nil {
		ingestRuns.WithLabelValues(source, "error").Inc()
		return res, err
	}
	res.Records = len(recs)
	s.snap.Replace(recs, len(raws))

	ingestRuns.WithLabelValues(source, "ok").Inc()
	log.Info("ingest complete", slog.Int("raw_rows", res.RawRows), slog.Int("records", res.Records), slog.Int("persisted", res.Persisted))
	return res, nil
}

// Reload rebuilds the snapshot from the document store without going
// back to the source.
func (s *Service) Reload(ctx context.Context) (RunResult, error) {
	res := RunResult{RunID: uuid.NewString(), Source: "store"}
	if s.docs == nil {
		return res, fmt.Errorf("document store not configured")
	}
	raws, err := s.docs.FetchAll(ctx)
	if err != nil {
		ingestRuns.WithLabelValues(res.Source, "error").Inc()
		return res, err
	}
	res.RawRows = len(raws)

	recs, err := report.Normalize(raws)
	if err != nil {
		ingestRuns.WithLabelValues(res.Source, "error").Inc()
		return res, err
	}
	res.Records = len(recs)
	s.snap.Replace(recs, len(raws))

	ingestRuns.WithLabelValues(res.Source, "ok").Inc()
	s.log.Info("snapshot reloaded from store", slog.String("run_id", res.RunID), slog.Int("records", res.Records))
	return res, nil
}

func (s *Service) load(ctx context.Context, source string) ([]models.RawRecord, error) {
	switch source {
	case "", "file":
		if s.cfg.ReportPath == "" {
			return nil, fmt.Errorf("report file path not configured")
		}
		return ReadWorkbook(s.cfg.ReportPath)
	case "feed":
		if s.cfg.FeedURL == "" {
			return nil, fmt.Errorf("feed url not configured")
		}
		return FetchFeed(ctx, s.c, s.cfg.FeedURL)
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}
