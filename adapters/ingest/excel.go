package ingest

import (
	"io"

	"github.com/xuri/excelize/v2"

	"trendlab/domain/table"
	"trendlab/internal/errors"
)

// LoadExcel reads the first sheet of an .xlsx/.xls upload into a table.
// The first row is the header, matching the CSV contract.
func (r *Reader) LoadExcel(src io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.IngestionFailed("failed to open spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.IngestionFailed("spreadsheet has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.IngestionFailed("failed to read sheet "+sheets[0], err)
	}
	if len(rows) < 1 {
		return nil, errors.IngestionFailed("sheet is empty", nil)
	}

	// GetRows drops trailing empty cells, so pad short rows to header width
	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		body = append(body, row)
	}

	return r.BuildTable(header, body)
}
