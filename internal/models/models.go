package models

import (
	"strconv"
	"time"
)

// Canonical field names. Normalization maps the source column headers
// onto these; every spec, filter and aggregation refers to them.
const (
	FieldStatus  = "status"
	FieldChannel = "channel"
	FieldType    = "funnel_type"
	FieldProduct = "product"
	FieldOrderID = "order_id"
	FieldDate    = "p90_date"
	FieldAge     = "age"

	DimCluster   = "cluster"
	DimState     = "state"
	DimBuilding  = "building"
	DimBandwidth = "bandwidth"
	DimContract  = "contract_period"
)

// Well-known categorical values of the reporting population.
const (
	StatusActive       = "Active"
	StatusLost         = "LOST"
	ChannelOnline      = "ONLINE"
	ChannelInsideSales = "INSIDE SALES"
	TypeNewSales       = "New Sales"
	ProductFTTH        = "Time B.Band-FTTH"
)

// RawRecord is one source row as loaded from the workbook, the feed or
// the document store: source column header -> loosely-typed value.
type RawRecord map[string]any

// FunnelRecord is one normalized row of the reporting population.
// ReportDate is nil when the source date was absent or unparseable;
// such records are excluded from weekly aggregation but not rejected.
type FunnelRecord struct {
	Status     string            `json:"status" bson:"status"`
	Channel    string            `json:"channel" bson:"channel"`
	FunnelType string            `json:"funnel_type" bson:"funnel_type"`
	Product    string            `json:"product" bson:"product"`
	OrderID    string            `json:"order_id" bson:"order_id"`
	ReportDate *time.Time        `json:"p90_date,omitempty" bson:"p90_date,omitempty"`
	Age        int               `json:"age" bson:"age"`
	Attrs      map[string]string `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Field returns the record's value for a canonical field name. The date
// field is formatted as YYYY-MM-DD; an unset date reports not-present.
func (r FunnelRecord) Field(name string) (string, bool) {
	switch name {
	case FieldStatus:
		return r.Status, true
	case FieldChannel:
		return r.Channel, true
	case FieldType:
		return r.FunnelType, true
	case FieldProduct:
		return r.Product, true
	case FieldOrderID:
		return r.OrderID, true
	case FieldDate:
		if r.ReportDate == nil {
			return "", false
		}
		return r.ReportDate.Format("2006-01-02"), true
	case FieldAge:
		return strconv.Itoa(r.Age), true
	}
	v, ok := r.Attrs[name]
	return v, ok
}

// IsCoreField reports whether name is a typed field (as opposed to an
// extra grouping attribute that may or may not be present per record).
func IsCoreField(name string) bool {
	switch name {
	case FieldStatus, FieldChannel, FieldType, FieldProduct, FieldOrderID, FieldDate, FieldAge:
		return true
	}
	return false
}

// IsKnownDimension reports whether name is one of the grouping
// attributes normalization can produce. These stay valid dimensions
// even over an empty population, where presence cannot be observed.
func IsKnownDimension(name string) bool {
	switch name {
	case DimCluster, DimState, DimBuilding, DimBandwidth, DimContract:
		return true
	}
	return false
}
