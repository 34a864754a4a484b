package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"trendlab/domain/analysis"
	"trendlab/internal/errors"
)

// ChiSquare performs a chi-square test of independence between two
// categorical columns. The contingency table is the cross-tabulation of
// label counts; rows with a missing label on either side are skipped.
// With one degree of freedom the Yates continuity correction is applied.
func ChiSquare(col1, col2 string, xLabels, yLabels []string) (*analysis.ChiSquareResult, error) {
	if len(xLabels) != len(yLabels) {
		return nil, errors.AnalysisFailed("categorical columns have mismatched lengths", nil)
	}

	rowLabels, colLabels, observed := Crosstab(xLabels, yLabels)
	nRows := len(rowLabels)
	nCols := len(colLabels)
	if nRows < 2 || nCols < 2 {
		return nil, errors.AnalysisFailed("contingency table needs at least two levels per variable", nil)
	}

	total := 0
	rowTotals := make([]int, nRows)
	colTotals := make([]int, nCols)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			rowTotals[i] += observed[i][j]
			colTotals[j] += observed[i][j]
			total += observed[i][j]
		}
	}
	if total == 0 {
		return nil, errors.AnalysisFailed("contingency table is empty", nil)
	}

	dof := (nRows - 1) * (nCols - 1)
	useYates := dof == 1

	chiSq := 0.0
	expected := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		expected[i] = make([]float64, nCols)
		for j := 0; j < nCols; j++ {
			e := float64(rowTotals[i]) * float64(colTotals[j]) / float64(total)
			expected[i][j] = e
			if e == 0 {
				continue
			}
			diff := math.Abs(float64(observed[i][j]) - e)
			if useYates {
				diff -= 0.5
				if diff < 0 {
					diff = 0
				}
			}
			chiSq += diff * diff / e
		}
	}

	pValue := chiSquarePValue(chiSq, dof)

	return &analysis.ChiSquareResult{
		Column1:          col1,
		Column2:          col2,
		RowLabels:        rowLabels,
		ColLabels:        colLabels,
		Observed:         observed,
		Expected:         expected,
		Statistic:        chiSq,
		PValue:           pValue,
		DegreesOfFreedom: dof,
		SampleSize:       total,
		Significant:      analysis.Significant(pValue),
	}, nil
}

// Crosstab cross-tabulates two label slices into a count matrix with
// sorted row and column labels. Pairs with an empty label are dropped.
func Crosstab(xLabels, yLabels []string) (rows, cols []string, counts [][]int) {
	rowSet := map[string]bool{}
	colSet := map[string]bool{}
	for i := range xLabels {
		if xLabels[i] == "" || yLabels[i] == "" {
			continue
		}
		rowSet[xLabels[i]] = true
		colSet[yLabels[i]] = true
	}

	for label := range rowSet {
		rows = append(rows, label)
	}
	for label := range colSet {
		cols = append(cols, label)
	}
	sort.Strings(rows)
	sort.Strings(cols)

	rowIdx := make(map[string]int, len(rows))
	for i, label := range rows {
		rowIdx[label] = i
	}
	colIdx := make(map[string]int, len(cols))
	for i, label := range cols {
		colIdx[label] = i
	}

	counts = make([][]int, len(rows))
	for i := range counts {
		counts[i] = make([]int, len(cols))
	}
	for i := range xLabels {
		if xLabels[i] == "" || yLabels[i] == "" {
			continue
		}
		counts[rowIdx[xLabels[i]]][colIdx[yLabels[i]]]++
	}
	return rows, cols, counts
}

// chiSquarePValue computes the exact upper-tail p-value from the
// chi-square distribution.
func chiSquarePValue(chiSq float64, dof int) float64 {
	if dof <= 0 {
		return 1.0
	}
	chiDist := distuv.ChiSquared{K: float64(dof)}
	p := 1 - chiDist.CDF(chiSq)
	if p < 0 {
		p = 0
	}
	return p
}
