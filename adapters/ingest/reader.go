package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"trendlab/domain/table"
	"trendlab/internal/errors"
)

// Reader ingests uploaded files into in-memory tables
type Reader struct {
	coercer *TypeCoercer
}

// NewReader creates a reader with default coercion thresholds
func NewReader() *Reader {
	return &Reader{coercer: NewTypeCoercer(DefaultCoercionConfig())}
}

// LoadCSV parses comma-separated bytes with a header row into a table
func (r *Reader) LoadCSV(src io.Reader) (*table.Table, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IngestionFailed("failed to parse CSV", err)
	}
	if len(records) < 1 {
		return nil, errors.IngestionFailed("file is empty", nil)
	}

	header := records[0]
	return r.BuildTable(header, records[1:])
}

// Load dispatches on file extension. CSV is parsed directly, .xlsx/.xls
// via the spreadsheet reader.
func (r *Reader) Load(filename string, src io.Reader) (*table.Table, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return r.LoadExcel(src)
	case strings.HasSuffix(lower, ".csv"):
		return r.LoadCSV(src)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s (only .csv, .xlsx, .xls are accepted)", filename))
	}
}

// BuildTable assembles a typed table from a header row and raw cell rows.
// The first column whose name contains "date" becomes the date index and
// every one of its cells must parse as a calendar date; a single bad cell
// fails the whole ingestion.
func (r *Reader) BuildTable(header []string, rows [][]string) (*table.Table, error) {
	if len(header) == 0 {
		return nil, errors.IngestionFailed("header row is empty", nil)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	nRows := len(rows)
	dateColumn := table.DetectDateColumn(header)

	t := &table.Table{
		Columns:    make([]table.Column, len(header)),
		RowCount:   nRows,
		DateColumn: dateColumn,
	}

	for c, name := range header {
		raw := make([]string, nRows)
		for rIdx, row := range rows {
			if c < len(row) {
				raw[rIdx] = strings.TrimSpace(row[c])
			}
		}

		col := table.Column{Name: name, Raw: raw}

		if strings.EqualFold(name, dateColumn) {
			times := make([]time.Time, nRows)
			for rIdx, cell := range raw {
				parsed, ok := r.coercer.ParseDate(cell)
				if !ok {
					return nil, errors.IngestionFailed(
						fmt.Sprintf("row %d: cannot parse %q as a date in column %q", rIdx+2, cell, name), nil)
				}
				times[rIdx] = parsed
			}
			col.Type = table.ColumnTimestamp
			col.Times = times
		} else if analysis := r.coercer.AnalyzeColumn(raw); r.coercer.IsNumericColumn(analysis) {
			values := make([]float64, nRows)
			for rIdx, cell := range raw {
				if v, ok := r.coercer.ParseNumeric(cell); ok {
					values[rIdx] = v
				} else {
					values[rIdx] = math.NaN()
				}
			}
			col.Type = table.ColumnNumeric
			col.Numeric = values
		} else if r.coercer.IsTimestampColumn(analysis) {
			// Date-valued column without "date" in its name: typed as a
			// timestamp so it never counts as categorical, but it does
			// not become the index. Unparseable cells stay zero.
			times := make([]time.Time, nRows)
			for rIdx, cell := range raw {
				if parsed, ok := r.coercer.ParseDate(cell); ok {
					times[rIdx] = parsed
				}
			}
			col.Type = table.ColumnTimestamp
			col.Times = times
		} else {
			col.Type = table.ColumnCategorical
		}

		t.Columns[c] = col
	}

	return t, nil
}
