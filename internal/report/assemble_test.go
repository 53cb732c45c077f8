package report

import (
	"errors"
	"testing"

	"github.com/deepdiver/funnelreport/internal/models"
)

func TestAssembleOrderMatchesRequest(t *testing.T) {
	a := rec("Active", "ONLINE", "SO1", "2024-01-03")
	a.Attrs = map[string]string{models.DimBandwidth: "500Mbps", models.DimState: "Selangor"}
	b := rec("Active", "INSIDE SALES", "SO2", "2024-01-05")
	b.Attrs = map[string]string{models.DimBandwidth: "1Gbps", models.DimState: "Johor"}

	dims := []string{models.DimState, models.FieldChannel, models.DimBandwidth}
	ms, err := Assemble([]models.FunnelRecord{a, b}, dims, models.AggregationSpec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("expected 3 matrices, got %d", len(ms))
	}
	for i, dim := range dims {
		if ms[i].Dimension != dim {
			t.Fatalf("matrix %d: expected dimension %s, got %s", i, dim, ms[i].Dimension)
		}
	}
}

func TestAssembleFailsWholeCall(t *testing.T) {
	recs := []models.FunnelRecord{rec("Active", "ONLINE", "SO1", "2024-01-03")}
	ms, err := Assemble(recs, []string{models.FieldChannel, "postcode"}, models.AggregationSpec{})
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if ms != nil {
		t.Fatalf("expected no partial sequence, got %d matrices", len(ms))
	}
}

func TestAssembleEmptyPopulation(t *testing.T) {
	ms, err := Assemble(nil, DefaultDimensions(), models.AllChannels())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms) != len(DefaultDimensions()) {
		t.Fatalf("expected %d matrices, got %d", len(DefaultDimensions()), len(ms))
	}
	for _, m := range ms {
		if m.Total() != 0 || len(m.Weeks) != 0 {
			t.Fatalf("expected empty matrix for %s, got %+v", m.Dimension, m)
		}
	}
}
