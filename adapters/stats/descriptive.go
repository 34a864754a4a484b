package stats

import (
	"math"

	"github.com/montanaflynn/stats"

	"trendlab/domain/analysis"
	"trendlab/domain/table"
)

// Summarize computes per-column descriptive statistics for the data
// preview: count/mean/std/min/max for numeric columns, cardinality for
// categorical ones.
func Summarize(t *table.Table) []analysis.ColumnSummary {
	summaries := make([]analysis.ColumnSummary, 0, len(t.Columns))

	for _, col := range t.Columns {
		summary := analysis.ColumnSummary{
			Name: col.Name,
			Type: string(col.Type),
		}

		switch col.Type {
		case table.ColumnNumeric:
			clean := dropMissing(col.Numeric)
			summary.Count = len(clean)
			summary.Missing = t.RowCount - len(clean)
			if len(clean) > 0 {
				summary.Mean, _ = stats.Mean(clean)
				summary.Min, _ = stats.Min(clean)
				summary.Max, _ = stats.Max(clean)
			}
			if len(clean) > 1 {
				summary.StdDev, _ = stats.StandardDeviationSample(clean)
			}
		case table.ColumnCategorical:
			seen := map[string]bool{}
			for _, label := range col.Raw {
				if label == "" {
					summary.Missing++
					continue
				}
				summary.Count++
				seen[label] = true
			}
			summary.Cardinality = len(seen)
		case table.ColumnTimestamp:
			summary.Count = len(col.Times)
		}

		if math.IsNaN(summary.Mean) {
			summary.Mean = 0
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
