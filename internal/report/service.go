package report

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/deepdiver/funnelreport/internal/models"
	"github.com/deepdiver/funnelreport/internal/store"
)

var reportsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "funnelreport_reports_built_total",
	Help: "Weekly report matrices built, by dimension.",
}, []string{"dimension"})

// Service answers report queries over the current population snapshot.
// Each request builds its own immutable spec and runs over its own copy
// of the records, so concurrent requests need no locking here.
type Service struct {
	snap *store.Snapshot
	log  *slog.Logger
}

func NewService(snap *store.Snapshot, log *slog.Logger) *Service {
	return &Service{snap: snap, log: log}
}

// Weekly builds one weekly matrix from query parameters:
// preset=direct|all|pipeline, dimension=<name>, year=<YYYY>.
func (s *Service) Weekly(v url.Values) (*models.Matrix, error) {
	spec, err := presetSpec(v.Get("preset"))
	if err != nil {
		return nil, err
	}
	dimension := v.Get("dimension")
	if dimension == "" {
		dimension = models.FieldChannel
	}

	recs := s.population(spec, v)
	m, err := Aggregate(recs, dimension, spec)
	if err != nil {
		return nil, err
	}
	reportsBuilt.WithLabelValues(dimension).Inc()
	return m, nil
}

// WeeklyBatch builds one matrix per requested dimension over a single
// filter pass: dimensions=<csv> (defaults to the standing report set).
func (s *Service) WeeklyBatch(v url.Values) ([]*models.Matrix, error) {
	spec, err := presetSpec(v.Get("preset"))
	if err != nil {
		return nil, err
	}
	dimensions := splitCSV(v.Get("dimensions"))
	if len(dimensions) == 0 {
		dimensions = DefaultDimensions()
	}

	recs := s.population(spec, v)
	out, err := Assemble(recs, dimensions, spec)
	if err != nil {
		return nil, err
	}
	for _, dim := range dimensions {
		reportsBuilt.WithLabelValues(dim).Inc()
	}
	return out, nil
}

// population filters the snapshot once per request, applying the
// optional year restriction on top of the preset predicates.
func (s *Service) population(spec models.AggregationSpec, v url.Values) []models.FunnelRecord {
	recs := FilterPopulation(s.snap.Records(), spec)
	if year, err := strconv.Atoi(v.Get("year")); err == nil && year > 0 {
		recs = filterYear(recs, year)
	}
	if len(recs) == 0 {
		s.log.Warn("empty population after filtering")
	}
	return recs
}

func filterYear(recs []models.FunnelRecord, year int) []models.FunnelRecord {
	out := make([]models.FunnelRecord, 0, len(recs))
	for _, r := range recs {
		if r.ReportDate != nil && r.ReportDate.Year() == year {
			out = append(out, r)
		}
	}
	return out
}

func presetSpec(name string) (models.AggregationSpec, error) {
	switch name {
	case "", "direct":
		return models.DirectChannels(), nil
	case "all":
		return models.AllChannels(), nil
	case "pipeline":
		return models.ActivePipeline(), nil
	default:
		return models.AggregationSpec{}, fmt.Errorf("unknown preset %q", name)
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
