package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"trendlab/domain/table"
)

func TestSummarize(t *testing.T) {
	tbl := &table.Table{
		RowCount: 4,
		Columns: []table.Column{
			{
				Name:    "sales",
				Type:    table.ColumnNumeric,
				Raw:     []string{"10", "20", "", "30"},
				Numeric: []float64{10, 20, math.NaN(), 30},
			},
			{
				Name: "region",
				Type: table.ColumnCategorical,
				Raw:  []string{"north", "south", "north", ""},
			},
		},
	}

	summaries := Summarize(tbl)
	require.Len(t, summaries, 2)

	sales := summaries[0]
	require.Equal(t, "sales", sales.Name)
	require.Equal(t, 3, sales.Count)
	require.Equal(t, 1, sales.Missing)
	require.InDelta(t, 20.0, sales.Mean, 1e-9)
	require.InDelta(t, 10.0, sales.Min, 1e-9)
	require.InDelta(t, 30.0, sales.Max, 1e-9)
	require.InDelta(t, 10.0, sales.StdDev, 1e-9)

	region := summaries[1]
	require.Equal(t, 3, region.Count)
	require.Equal(t, 1, region.Missing)
	require.Equal(t, 2, region.Cardinality)
}
