package report

import (
	"log/slog"
	"net/url"
	"testing"

	"github.com/deepdiver/funnelreport/internal/models"
	"github.com/deepdiver/funnelreport/internal/store"
)

func newTestService(recs []models.FunnelRecord) *Service {
	snap := store.NewSnapshot()
	snap.Replace(recs, len(recs))
	return NewService(snap, slog.Default())
}

func TestServiceWeeklyDefaults(t *testing.T) {
	svc := newTestService([]models.FunnelRecord{
		rec("Active", "ONLINE", "SO1", "2024-01-03"),
		rec("Active", "INSIDE SALES", "SO2", "2024-01-06"),
	})
	m, err := svc.Weekly(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Dimension != models.FieldChannel {
		t.Fatalf("expected default channel dimension, got %s", m.Dimension)
	}
	if m.Total() != 2 {
		t.Fatalf("expected total 2, got %d", m.Total())
	}
}

func TestServiceWeeklyYearRestriction(t *testing.T) {
	svc := newTestService([]models.FunnelRecord{
		rec("Active", "ONLINE", "SO1", "2023-12-20"),
		rec("Active", "ONLINE", "SO2", "2024-01-03"),
	})
	m, err := svc.Weekly(url.Values{"year": {"2024"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Total() != 1 {
		t.Fatalf("expected only the 2024 record, got total %d", m.Total())
	}
}

func TestServiceWeeklyUnknownPreset(t *testing.T) {
	svc := newTestService(nil)
	if _, err := svc.Weekly(url.Values{"preset": {"bogus"}}); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestServiceWeeklyBatchDefaultDimensions(t *testing.T) {
	a := rec("Active", "ONLINE", "SO1", "2024-01-03")
	a.Attrs = map[string]string{models.DimBandwidth: "500Mbps", models.DimState: "Selangor", models.DimContract: "24"}
	svc := newTestService([]models.FunnelRecord{a})

	ms, err := svc.WeeklyBatch(url.Values{"preset": {"all"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms) != len(DefaultDimensions()) {
		t.Fatalf("expected %d matrices, got %d", len(DefaultDimensions()), len(ms))
	}
	if ms[0].Dimension != models.FieldChannel {
		t.Fatalf("expected channel first, got %s", ms[0].Dimension)
	}
}

func TestServiceWeeklyBatchCustomDimensions(t *testing.T) {
	a := rec("Active", "ONLINE", "SO1", "2024-01-03")
	a.Attrs = map[string]string{models.DimCluster: "North"}
	svc := newTestService([]models.FunnelRecord{a})

	ms, err := svc.WeeklyBatch(url.Values{"dimensions": {"cluster, channel"}, "preset": {"all"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms) != 2 || ms[0].Dimension != models.DimCluster || ms[1].Dimension != models.FieldChannel {
		t.Fatalf("unexpected matrices: %+v", ms)
	}
}

func TestServiceEmptySnapshotWellFormed(t *testing.T) {
	svc := newTestService(nil)
	m, err := svc.Weekly(url.Values{"preset": {"direct"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Total() != 0 || len(m.Weeks) != 0 {
		t.Fatalf("expected empty matrix, got %+v", m)
	}
}
