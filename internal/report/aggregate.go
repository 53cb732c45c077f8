package report

import (
	"sort"
	"time"

	"github.com/deepdiver/funnelreport/internal/models"
)

// Aggregate buckets the (already filtered) records into calendar weeks
// and counts occurrences of the spec's count field per (week, dimension
// value) pair. The result is dense: weeks run contiguously from the
// earliest to the latest bucket present in the data, and every cell
// with no records holds an explicit zero.
//
// Records without a report date cannot be bucketed and are skipped;
// records without a count-field value are not counted. When the spec
// carries a ChannelSubset and the dimension is the channel, the output
// columns are exactly that subset in that order, and values outside it
// are dropped.
//
// It fails with *MissingColumnError before producing any output when
// the dimension, date field or count field does not exist among the
// normalized record fields.
func Aggregate(recs []models.FunnelRecord, dimension string, spec models.AggregationSpec) (*models.Matrix, error) {
	if err := validateFields(recs, dimension, spec); err != nil {
		return nil, err
	}

	counts := make(map[string]map[time.Time]int)
	var minWeek, maxWeek time.Time
	countField := spec.EffectiveCountField()

	for _, r := range recs {
		if r.ReportDate == nil {
			continue
		}
		if v, ok := r.Field(countField); !ok || v == "" {
			continue
		}
		week := WeekEnding(*r.ReportDate)
		if minWeek.IsZero() || week.Before(minWeek) {
			minWeek = week
		}
		if maxWeek.IsZero() || week.After(maxWeek) {
			maxWeek = week
		}
		val, ok := r.Field(dimension)
		if !ok {
			continue
		}
		if counts[val] == nil {
			counts[val] = make(map[time.Time]int)
		}
		counts[val][week]++
	}

	if minWeek.IsZero() {
		return models.EmptyMatrix(dimension), nil
	}

	columns := columnOrder(counts, dimension, spec)
	weeks := WeekRange(minWeek, maxWeek)

	cells := make([][]int, len(weeks))
	for i, w := range weeks {
		row := make([]int, len(columns))
		for j, col := range columns {
			row[j] = counts[col][w]
		}
		cells[i] = row
	}

	return &models.Matrix{Dimension: dimension, Weeks: weeks, Columns: columns, Cells: cells}, nil
}

// columnOrder sorts observed dimension values lexically, unless a
// channel subset pins both membership and order.
func columnOrder(counts map[string]map[time.Time]int, dimension string, spec models.AggregationSpec) []string {
	if dimension == models.FieldChannel && len(spec.ChannelSubset) > 0 {
		columns := make([]string, len(spec.ChannelSubset))
		for i, c := range spec.ChannelSubset {
			columns[i] = NormalizeChannel(c)
		}
		return columns
	}
	columns := make([]string, 0, len(counts))
	for v := range counts {
		columns = append(columns, v)
	}
	sort.Strings(columns)
	return columns
}

func validateFields(recs []models.FunnelRecord, dimension string, spec models.AggregationSpec) error {
	if dimension == "" {
		return &MissingColumnError{Column: dimension}
	}
	for _, field := range []string{dimension, spec.EffectiveDateField(), spec.EffectiveCountField()} {
		if !fieldExists(recs, field) {
			return &MissingColumnError{Column: field}
		}
	}
	// The engine carries a single date per record; a spec naming some
	// other column as the date field is a contract violation even if
	// that column exists as a grouping attribute.
	if df := spec.EffectiveDateField(); df != models.FieldDate {
		return &MissingColumnError{Column: df}
	}
	return nil
}

func fieldExists(recs []models.FunnelRecord, name string) bool {
	if models.IsCoreField(name) || models.IsKnownDimension(name) {
		return true
	}
	for _, r := range recs {
		if _, ok := r.Attrs[name]; ok {
			return true
		}
	}
	return false
}
