package models

import "time"

// Matrix is a dense weekly count table: one row per week-ending-Sunday
// bucket (ascending, contiguous), one column per dimension value, and
// an explicit zero in every cell with no records. Weeks-as-rows is
// load-bearing: the CSV export and the stacked-share presentation both
// assume it.
type Matrix struct {
	Dimension string      `json:"dimension"`
	Weeks     []time.Time `json:"weeks"`
	Columns   []string    `json:"columns"`
	Cells     [][]int     `json:"cells"`
}

// EmptyMatrix returns a structurally valid matrix with no rows or
// columns, the well-formed result for an empty population.
func EmptyMatrix(dimension string) *Matrix {
	return &Matrix{Dimension: dimension, Weeks: []time.Time{}, Columns: []string{}, Cells: [][]int{}}
}

// Total sums every cell.
func (m *Matrix) Total() int {
	var n int
	for _, row := range m.Cells {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// RowTotal sums the row for one week.
func (m *Matrix) RowTotal(week int) int {
	var n int
	for _, c := range m.Cells[week] {
		n += c
	}
	return n
}

// ColumnTotals sums each column across all weeks.
func (m *Matrix) ColumnTotals() []int {
	totals := make([]int, len(m.Columns))
	for _, row := range m.Cells {
		for j, c := range row {
			totals[j] += c
		}
	}
	return totals
}

// Shares returns each row normalized to fractions of its own total,
// the 100%-stacked view of the matrix. Rows with a zero total stay
// all-zero.
func (m *Matrix) Shares() [][]float64 {
	out := make([][]float64, len(m.Cells))
	for i, row := range m.Cells {
		out[i] = make([]float64, len(row))
		total := m.RowTotal(i)
		if total == 0 {
			continue
		}
		for j, c := range row {
			out[i][j] = float64(c) / float64(total)
		}
	}
	return out
}
