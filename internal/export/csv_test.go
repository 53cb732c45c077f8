package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/deepdiver/funnelreport/internal/models"
)

func weeklyMatrix() *models.Matrix {
	return &models.Matrix{
		Dimension: models.FieldChannel,
		Weeks: []time.Time{
			time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		Columns: []string{models.ChannelOnline, models.ChannelInsideSales},
		Cells:   [][]int{{2, 1}, {0, 0}},
	}
}

func TestWriteMatrixCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteMatrixCSV(&b, weeklyMatrix()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "week_ending,ONLINE,INSIDE SALES" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2024-01-07,2,1" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// Zero week written out, not omitted.
	if lines[2] != "2024-01-14,0,0" {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestWritePopulationCSV(t *testing.T) {
	d := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	recs := []models.FunnelRecord{
		{Status: "Active", Channel: models.ChannelOnline, OrderID: "SO1", ReportDate: &d, Age: 3,
			Attrs: map[string]string{models.DimState: "Johor"}},
		{Status: "LOST", Channel: models.ChannelInsideSales, OrderID: "SO2"},
	}
	var b strings.Builder
	if err := WritePopulationCSV(&b, recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0,Active,ONLINE") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[1], "2024-01-03") {
		t.Fatalf("date missing from row: %q", lines[1])
	}
}

func TestMatrixFileWritesTimestampedCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := MatrixFile(dir, weeklyMatrix())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "_channel_weekly.csv") {
		t.Fatalf("unexpected file name: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "2024-01-07,2,1") {
		t.Fatalf("unexpected contents: %s", data)
	}
}
