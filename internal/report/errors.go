package report

import (
	"fmt"
	"strings"
)

// SchemaError reports required source columns absent from a whole
// batch. Any row can be checked independently, but a missing column is
// a structural problem with the source, so it aborts normalization.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source schema missing required columns: %s", strings.Join(e.Missing, ", "))
}

// MissingColumnError reports a configured dimension, date or count
// field that does not exist among the normalized record fields. Raised
// before any partial table is produced.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist in the population", e.Column)
}
