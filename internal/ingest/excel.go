package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/deepdiver/funnelreport/internal/models"
)

// ReadWorkbook loads the BO report workbook into raw records, one per
// data row on the first sheet. Headers are kept verbatim, including the
// leading-space channel header; cleaning them is the normalizer's job,
// not the loader's.
func ReadWorkbook(path string) ([]models.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	headers := rows[0]
	out := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if empty(row) {
			continue
		}
		rec := make(models.RawRecord, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(row) {
				continue
			}
			rec[h] = row[i]
		}
		out = append(out, rec)
	}
	return out, nil
}

func empty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
