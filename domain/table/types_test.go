package table

import (
	"testing"
	"time"

	"trendlab/internal/errors"
)

func sampleTable() *Table {
	return &Table{
		RowCount:   3,
		DateColumn: "OrderDate",
		Columns: []Column{
			{
				Name:  "OrderDate",
				Type:  ColumnTimestamp,
				Raw:   []string{"2023-01-01", "2023-02-01", "2023-03-01"},
				Times: []time.Time{{}, {}, {}},
			},
			{Name: "Region", Type: ColumnCategorical, Raw: []string{"N", "S", "N"}},
			{Name: "Sales", Type: ColumnNumeric, Raw: []string{"1", "2", "3"}, Numeric: []float64{1, 2, 3}},
			{Name: "Units", Type: ColumnNumeric, Raw: []string{"4", "5", "6"}, Numeric: []float64{4, 5, 6}},
		},
	}
}

func TestColumnLookupIsCaseInsensitive(t *testing.T) {
	tbl := sampleTable()

	col, ok := tbl.Column("sales")
	if !ok || col.Name != "Sales" {
		t.Fatalf("expected case-insensitive match for Sales, got %v (%v)", col, ok)
	}

	if _, ok := tbl.Column("missing"); ok {
		t.Fatal("unexpected match for unknown column")
	}
}

func TestColumnLists(t *testing.T) {
	tbl := sampleTable()

	numeric := tbl.NumericColumns()
	if len(numeric) != 2 || numeric[0] != "Sales" || numeric[1] != "Units" {
		t.Fatalf("unexpected numeric columns: %v", numeric)
	}

	categorical := tbl.CategoricalColumns()
	if len(categorical) != 1 || categorical[0] != "Region" {
		t.Fatalf("unexpected categorical columns: %v", categorical)
	}
}

func TestDateIndex(t *testing.T) {
	tbl := sampleTable()
	dates, err := tbl.DateIndex()
	if err != nil {
		t.Fatalf("date index: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}

	tbl.DateColumn = ""
	if _, err := tbl.DateIndex(); errors.GetCode(err) != errors.CodeMissingDateColumn {
		t.Fatalf("expected MISSING_DATE_COLUMN, got %v", err)
	}
}

func TestHead(t *testing.T) {
	tbl := sampleTable()

	rows := tbl.Head(2)
	if len(rows) != 2 || rows[0][1] != "N" || rows[1][2] != "2" {
		t.Fatalf("unexpected preview rows: %v", rows)
	}

	if got := len(tbl.Head(10)); got != 3 {
		t.Fatalf("Head should cap at RowCount, got %d rows", got)
	}
}

func TestDetectDateColumn(t *testing.T) {
	cases := []struct {
		header []string
		want   string
	}{
		{[]string{"OrderDate", "Sales"}, "OrderDate"},
		{[]string{"Sales", "ship_date", "delivery_date"}, "ship_date"},
		{[]string{"DATE"}, "DATE"},
		{[]string{"Updated", "Sales"}, "Updated"},
		{[]string{"Region", "Sales"}, ""},
	}

	for _, tc := range cases {
		if got := DetectDateColumn(tc.header); got != tc.want {
			t.Errorf("DetectDateColumn(%v) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
