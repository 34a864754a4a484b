package table

import (
	"strings"
	"time"

	"trendlab/internal/errors"
)

// ColumnType represents the inferred storage type of a column
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnCategorical ColumnType = "categorical"
	ColumnTimestamp   ColumnType = "timestamp"
)

// Column holds one named column with typed parallel storage.
// Raw always carries the original cell text; the typed slice matching
// Type is populated, the others are nil.
type Column struct {
	Name    string      `json:"name"`
	Type    ColumnType  `json:"type"`
	Raw     []string    `json:"-"`
	Numeric []float64   `json:"-"` // NaN marks a missing value
	Times   []time.Time `json:"-"`
}

// Table is the in-memory representation of one uploaded file. It lives
// only inside a browser session and is rebuilt on every upload.
type Table struct {
	Columns  []Column `json:"columns"`
	RowCount int      `json:"row_count"`

	// DateColumn names the detected date index column, "" when the
	// upload carried no column with "date" in its name.
	DateColumn string `json:"date_column,omitempty"`
}

// Column returns the named column, matching case-insensitively.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// NumericColumns lists the names of all numeric columns in order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Type == ColumnNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns lists the names of all text-typed columns in order.
// The date index column is never categorical.
func (t *Table) CategoricalColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Type == ColumnCategorical {
			names = append(names, c.Name)
		}
	}
	return names
}

// DateIndex returns the parsed date index.
// Fails with MISSING_DATE_COLUMN when no date column was detected.
func (t *Table) DateIndex() ([]time.Time, error) {
	if t.DateColumn == "" {
		return nil, errors.MissingDateColumn()
	}
	col, ok := t.Column(t.DateColumn)
	if !ok || col.Type != ColumnTimestamp {
		return nil, errors.MissingDateColumn()
	}
	return col.Times, nil
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Head returns up to n preview rows of raw cell text.
func (t *Table) Head(n int) [][]string {
	if n > t.RowCount {
		n = t.RowCount
	}
	rows := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(t.Columns))
		for c := range t.Columns {
			row[c] = t.Columns[c].Raw[r]
		}
		rows[r] = row
	}
	return rows
}

// DetectDateColumn finds the first column whose name contains the
// substring "date", case-insensitively. Returns "" when none exists.
func DetectDateColumn(header []string) string {
	for _, name := range header {
		if strings.Contains(strings.ToLower(name), "date") {
			return name
		}
	}
	return ""
}
