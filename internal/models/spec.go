package models

// AggregationSpec describes one aggregation request: which records form
// the reporting population and how they are counted. Construct once per
// report request; zero-value fields mean "no restriction".
type AggregationSpec struct {
	Status     string   `json:"status,omitempty"`      // keep records with this exact status
	StatusNot  string   `json:"status_not,omitempty"`  // drop records with this exact status
	FunnelType string   `json:"funnel_type,omitempty"` // keep records with this funnel type
	Product    string   `json:"product,omitempty"`     // keep records with this product name
	Channels   []string `json:"channels,omitempty"`    // keep records whose channel is in this list

	DateField  string `json:"date_field,omitempty"`  // defaults to FieldDate
	CountField string `json:"count_field,omitempty"` // defaults to FieldOrderID

	// ChannelSubset fixes the output columns of a channel aggregation:
	// exactly these values, in exactly this order. Values outside the
	// subset are dropped, not zero-filled.
	ChannelSubset []string `json:"channel_subset,omitempty"`
}

// EffectiveDateField returns the configured date field or the default.
func (s AggregationSpec) EffectiveDateField() string {
	if s.DateField == "" {
		return FieldDate
	}
	return s.DateField
}

// EffectiveCountField returns the configured count field or the default.
func (s AggregationSpec) EffectiveCountField() string {
	if s.CountField == "" {
		return FieldOrderID
	}
	return s.CountField
}

// DirectChannels is the "direct channels" preset: active New Sales FTTH
// records acquired through the two direct channels, with the channel
// columns pinned to ONLINE then INSIDE SALES.
func DirectChannels() AggregationSpec {
	return AggregationSpec{
		Status:        StatusActive,
		FunnelType:    TypeNewSales,
		Product:       ProductFTTH,
		Channels:      []string{ChannelOnline, ChannelInsideSales},
		ChannelSubset: []string{ChannelOnline, ChannelInsideSales},
	}
}

// AllChannels is the "all channels" preset: same population as
// DirectChannels minus the channel restriction.
func AllChannels() AggregationSpec {
	return AggregationSpec{
		Status:     StatusActive,
		FunnelType: TypeNewSales,
		Product:    ProductFTTH,
	}
}

// ActivePipeline keeps everything that is not LOST. Not equivalent to
// AllChannels when a third status value exists, so it stays a separate
// preset.
func ActivePipeline() AggregationSpec {
	return AggregationSpec{StatusNot: StatusLost}
}
