package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deepdiver/funnelreport/internal/models"
)

// Source column headers as they appear in the BO report workbook. The
// channel column carries a leading space in the export; Normalize
// rewrites it before anything compares or groups on it.
const (
	colStatus     = "Funn Status"
	colChannelRaw = " Channel"
	colChannel    = "Channel"
	colOrderID    = "Funnel SO No"
	colType       = "Funnel Type"
	colProduct    = "Funnel Productname"
	colDate       = "Probability 90% Date"
	colAge        = "Age"
	colCluster    = "Blk Cluster"
	colState      = "Blk State"
	colBuilding   = "Bld Name"
	colBandwidth  = "Funnel Bandwidth"
	colContract   = "Funn Monthcontractperiod"
)

const dateLayout = "2006-01-02"

var titleCaser = cases.Title(language.English)

// attrColumns maps optional source columns to the canonical grouping
// dimension they feed, and whether the value gets title-cased.
var attrColumns = []struct {
	col       string
	dim       string
	titleCase bool
}{
	{colCluster, models.DimCluster, true},
	{colState, models.DimState, true},
	{colBuilding, models.DimBuilding, true},
	{colBandwidth, models.DimBandwidth, false},
	{colContract, models.DimContract, false},
}

// Normalize coerces raw source rows into typed FunnelRecords: renames
// the misformatted channel column, trims and title-cases free-text
// categories, parses dates and ages with per-record fallbacks. The
// input is not mutated. It fails with *SchemaError when a required
// column is absent from the batch's entire column set.
func Normalize(raws []models.RawRecord) ([]models.FunnelRecord, error) {
	if err := checkSchema(raws); err != nil {
		return nil, err
	}

	out := make([]models.FunnelRecord, 0, len(raws))
	for _, raw := range raws {
		rec := models.FunnelRecord{
			Status:     strings.TrimSpace(asString(raw[colStatus])),
			Channel:    NormalizeChannel(asString(channelValue(raw))),
			FunnelType: strings.TrimSpace(asString(raw[colType])),
			Product:    strings.TrimSpace(asString(raw[colProduct])),
			OrderID:    strings.TrimSpace(asString(raw[colOrderID])),
			ReportDate: parseDate(raw[colDate]),
			Age:        parseAge(raw[colAge]),
		}
		for _, ac := range attrColumns {
			v, ok := raw[ac.col]
			if !ok {
				continue
			}
			s := strings.TrimSpace(asString(v))
			if ac.titleCase {
				s = titleCaser.String(strings.ToLower(s))
			}
			if rec.Attrs == nil {
				rec.Attrs = make(map[string]string)
			}
			rec.Attrs[ac.dim] = s
		}
		out = append(out, rec)
	}
	return out, nil
}

// NormalizeChannel produces the canonical channel key. Grouping and
// equality on channels always go through this.
func NormalizeChannel(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func checkSchema(raws []models.RawRecord) error {
	if len(raws) == 0 {
		return nil
	}
	present := make(map[string]bool)
	for _, raw := range raws {
		for k := range raw {
			if k == colChannelRaw {
				k = colChannel
			}
			present[k] = true
		}
	}
	var missing []string
	for _, req := range []string{colStatus, colChannel, colOrderID} {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaError{Missing: missing}
	}
	return nil
}

func channelValue(raw models.RawRecord) any {
	if v, ok := raw[colChannel]; ok {
		return v
	}
	return raw[colChannelRaw]
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(dateLayout)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// parseDate accepts the workbook string format, native time values from
// excelize, and unix-millisecond numbers from document-store round
// trips. Anything else is a nil date, never an error: dateless records
// are excluded later by the bucketer, not rejected here.
func parseDate(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		d := dayUTC(t)
		return &d
	case *time.Time:
		if t == nil {
			return nil
		}
		d := dayUTC(*t)
		return &d
	case string:
		s := strings.TrimSpace(t)
		if len(s) > len(dateLayout) {
			s = s[:len(dateLayout)]
		}
		if d, err := time.Parse(dateLayout, s); err == nil {
			d = dayUTC(d)
			return &d
		}
		return nil
	case float64:
		return unixMillis(int64(t))
	case int64:
		return unixMillis(t)
	case int:
		return unixMillis(int64(t))
	default:
		return nil
	}
}

func unixMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	d := dayUTC(time.UnixMilli(ms).UTC())
	return &d
}

func parseAge(v any) int {
	switch t := v.(type) {
	case int:
		return max0(t)
	case int64:
		return max0(int(t))
	case float64:
		return max0(int(t))
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return max0(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return max0(int(f))
		}
	}
	return 0
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
