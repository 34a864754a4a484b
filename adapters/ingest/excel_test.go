package ingest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"trendlab/domain/table"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadExcel(t *testing.T) {
	reader := NewReader()

	buf := buildWorkbook(t, [][]interface{}{
		{"OrderDate", "Region", "Sales"},
		{"2023-01-01", "North", "100.5"},
		{"2023-02-01", "South", "200.0"},
		{"2023-03-01", "North", "150.0"},
	})

	tbl, err := reader.Load("report.xlsx", buf)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.RowCount)
	require.Equal(t, "OrderDate", tbl.DateColumn)

	sales, ok := tbl.Column("Sales")
	require.True(t, ok)
	require.Equal(t, table.ColumnNumeric, sales.Type)
	require.InDelta(t, 100.5, sales.Numeric[0], 1e-9)
}

func TestLoadExcel_PadsShortRows(t *testing.T) {
	reader := NewReader()

	buf := buildWorkbook(t, [][]interface{}{
		{"OrderDate", "Region", "Sales"},
		{"2023-01-01", "North", "100"},
		{"2023-02-01"}, // trailing cells missing
	})

	tbl, err := reader.Load("report.xlsx", buf)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.RowCount)

	region, _ := tbl.Column("Region")
	require.Equal(t, "", region.Raw[1])
}

func TestLoadExcel_NotASpreadsheet(t *testing.T) {
	reader := NewReader()
	_, err := reader.Load("report.xlsx", bytes.NewReader([]byte("plain text")))
	require.Error(t, err)
}

func TestLoadExcel_LargeSheet(t *testing.T) {
	rows := [][]interface{}{{"date", "value"}}
	for i := 0; i < 40; i++ {
		rows = append(rows, []interface{}{fmt.Sprintf("2020-%02d-01", i%12+1), fmt.Sprintf("%d", 100+i)})
	}

	reader := NewReader()
	tbl, err := reader.Load("big.xlsx", buildWorkbook(t, rows))
	require.NoError(t, err)
	require.Equal(t, 40, tbl.RowCount)
	require.Equal(t, "date", tbl.DateColumn)
}
