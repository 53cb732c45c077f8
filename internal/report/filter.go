package report

import "github.com/deepdiver/funnelreport/internal/models"

// FilterPopulation returns the records satisfying every predicate the
// spec sets, in their original order. An empty result is valid and
// flows through to aggregation as a well-formed empty table.
func FilterPopulation(recs []models.FunnelRecord, spec models.AggregationSpec) []models.FunnelRecord {
	out := make([]models.FunnelRecord, 0, len(recs))
	for _, r := range recs {
		if matches(r, spec) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.FunnelRecord, spec models.AggregationSpec) bool {
	if spec.Status != "" && r.Status != spec.Status {
		return false
	}
	if spec.StatusNot != "" && r.Status == spec.StatusNot {
		return false
	}
	if spec.FunnelType != "" && r.FunnelType != spec.FunnelType {
		return false
	}
	if spec.Product != "" && r.Product != spec.Product {
		return false
	}
	if len(spec.Channels) > 0 && !containsChannel(spec.Channels, r.Channel) {
		return false
	}
	return true
}

func containsChannel(channels []string, ch string) bool {
	for _, c := range channels {
		if NormalizeChannel(c) == ch {
			return true
		}
	}
	return false
}
