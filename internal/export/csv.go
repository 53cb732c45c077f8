package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/deepdiver/funnelreport/internal/models"
)

const dateLayout = "2006-01-02"

// WriteMatrixCSV writes a weekly matrix as CSV: a week column followed
// by one column per dimension value, one row per week. Zero cells are
// written out, so the file is as dense as the matrix.
func WriteMatrixCSV(w io.Writer, m *models.Matrix) error {
	cw := csv.NewWriter(w)

	header := append([]string{"week_ending"}, m.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, week := range m.Weeks {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, week.Format(dateLayout))
		for _, c := range m.Cells[i] {
			row = append(row, strconv.Itoa(c))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePopulationCSV writes the normalized population as CSV, one line
// per record, with an id column like the upstream export.
func WritePopulationCSV(w io.Writer, recs []models.FunnelRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"id", models.FieldStatus, models.FieldChannel, models.FieldType,
		models.FieldProduct, models.FieldOrderID, models.FieldDate, models.FieldAge,
		models.DimCluster, models.DimState, models.DimBuilding, models.DimBandwidth, models.DimContract}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range recs {
		date := ""
		if r.ReportDate != nil {
			date = r.ReportDate.Format(dateLayout)
		}
		row := []string{
			strconv.Itoa(i), r.Status, r.Channel, r.FunnelType, r.Product, r.OrderID,
			date, strconv.Itoa(r.Age),
			r.Attrs[models.DimCluster], r.Attrs[models.DimState], r.Attrs[models.DimBuilding],
			r.Attrs[models.DimBandwidth], r.Attrs[models.DimContract],
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MatrixFile writes a matrix to a timestamped CSV file in dir and
// returns the path.
func MatrixFile(dir string, m *models.Matrix) (string, error) {
	name := fmt.Sprintf("%s_%s_weekly.csv", time.Now().Format("20060102_150405"), m.Dimension)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if err := WriteMatrixCSV(f, m); err != nil {
		return "", err
	}
	return path, nil
}

// PopulationFile writes the population to a timestamped CSV file in dir
// and returns the path.
func PopulationFile(dir string, recs []models.FunnelRecord) (string, error) {
	name := fmt.Sprintf("%s_export.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if err := WritePopulationCSV(f, recs); err != nil {
		return "", err
	}
	return path, nil
}
