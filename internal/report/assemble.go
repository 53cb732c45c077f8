package report

import (
	"github.com/deepdiver/funnelreport/internal/models"
)

// DefaultDimensions is the dimension set of the standing weekly report.
func DefaultDimensions() []string {
	return []string{models.FieldChannel, models.DimBandwidth, models.DimState, models.DimContract}
}

// Assemble builds one matrix per dimension over a single filtered
// population, in the order the dimensions were requested. The filter
// runs once in the caller, not once per dimension. If any dimension
// fails, the whole call fails; no partial sequence is returned.
func Assemble(recs []models.FunnelRecord, dimensions []string, spec models.AggregationSpec) ([]*models.Matrix, error) {
	out := make([]*models.Matrix, 0, len(dimensions))
	for _, dim := range dimensions {
		m, err := Aggregate(recs, dim, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
