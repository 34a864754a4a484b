package stats

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"trendlab/domain/analysis"
	"trendlab/internal/errors"
)

// TTest performs an independent two-sample t-test between two numeric
// columns. Variances are pooled (Student's t), so the test assumes equal
// population variances. Missing values are dropped per sample.
func TTest(col1, col2 string, x, y []float64) (*analysis.TTestResult, error) {
	sample1 := dropMissing(x)
	sample2 := dropMissing(y)

	n1 := len(sample1)
	n2 := len(sample2)
	if n1 < 2 || n2 < 2 {
		return nil, errors.AnalysisFailed("t-test requires at least 2 observations per sample", nil)
	}

	mean1, err := stats.Mean(sample1)
	if err != nil {
		return nil, errors.AnalysisFailed("failed to compute sample mean", err)
	}
	mean2, err := stats.Mean(sample2)
	if err != nil {
		return nil, errors.AnalysisFailed("failed to compute sample mean", err)
	}
	var1, err := stats.SampleVariance(sample1)
	if err != nil {
		return nil, errors.AnalysisFailed("failed to compute sample variance", err)
	}
	var2, err := stats.SampleVariance(sample2)
	if err != nil {
		return nil, errors.AnalysisFailed("failed to compute sample variance", err)
	}

	// Pooled variance: sp² = ((n1-1)s1² + (n2-1)s2²) / (n1+n2-2)
	df := float64(n1 + n2 - 2)
	pooled := (float64(n1-1)*var1 + float64(n2-1)*var2) / df
	se := math.Sqrt(pooled * (1/float64(n1) + 1/float64(n2)))
	if se == 0 {
		return nil, errors.AnalysisFailed("both samples have zero variance, t-statistic is undefined", nil)
	}

	tStat := (mean1 - mean2) / se
	pValue := twoTailedTPValue(tStat, df)

	return &analysis.TTestResult{
		Column1:          col1,
		Column2:          col2,
		N1:               n1,
		N2:               n2,
		Mean1:            mean1,
		Mean2:            mean2,
		Statistic:        tStat,
		PValue:           pValue,
		DegreesOfFreedom: df,
		Significant:      analysis.Significant(pValue),
	}, nil
}

// twoTailedTPValue computes the exact two-tailed p-value from Student's
// t-distribution.
func twoTailedTPValue(tStat, df float64) float64 {
	if df <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(tStat)))
	if p > 1 {
		p = 1
	}
	return p
}

// dropMissing filters NaN entries out of a sample
func dropMissing(data []float64) []float64 {
	clean := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return clean
}
