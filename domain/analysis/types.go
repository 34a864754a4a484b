package analysis

// SignificanceLevel is the fixed decision threshold applied to every test.
// Verdicts are strict: p < 0.05 is significant, p == 0.05 is not.
const SignificanceLevel = 0.05

// Significant reports the fixed-threshold verdict for a p-value.
func Significant(pValue float64) bool {
	return pValue < SignificanceLevel
}

// TTestResult carries the outcome of an independent two-sample t-test
type TTestResult struct {
	Column1          string  `json:"column_1"`
	Column2          string  `json:"column_2"`
	N1               int     `json:"n1"`
	N2               int     `json:"n2"`
	Mean1            float64 `json:"mean_1"`
	Mean2            float64 `json:"mean_2"`
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"p_value"`
	DegreesOfFreedom float64 `json:"degrees_of_freedom"`
	Significant      bool    `json:"significant"`
}

// ChiSquareResult carries the outcome of a chi-square test of independence
type ChiSquareResult struct {
	Column1          string      `json:"column_1"`
	Column2          string      `json:"column_2"`
	RowLabels        []string    `json:"row_labels"`
	ColLabels        []string    `json:"col_labels"`
	Observed         [][]int     `json:"observed"`
	Expected         [][]float64 `json:"expected"`
	Statistic        float64     `json:"statistic"`
	PValue           float64     `json:"p_value"`
	DegreesOfFreedom int         `json:"degrees_of_freedom"`
	SampleSize       int         `json:"sample_size"`
	Significant      bool        `json:"significant"`
}

// StationarityResult carries an augmented Dickey-Fuller test outcome
type StationarityResult struct {
	Statistic  float64 `json:"statistic"`
	PValue     float64 `json:"p_value"`
	Lags       int     `json:"lags"`
	NObs       int     `json:"n_obs"`
	Stationary bool    `json:"stationary"`
}

// DecompositionResult carries the additive seasonal decomposition panels.
// Trend and Residual hold NaN at the edges the moving average cannot reach.
type DecompositionResult struct {
	Observed []float64 `json:"observed"`
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
	Period   int       `json:"period"`
}

// ForecastResult carries an ARIMA forecast alongside its history
type ForecastResult struct {
	Column   string    `json:"column"`
	Order    [3]int    `json:"order"`
	History  []float64 `json:"history"`
	Forecast []float64 `json:"forecast"`
	Horizon  int       `json:"horizon"`
}

// ColumnSummary holds descriptive statistics shown in the data preview
type ColumnSummary struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Count       int     `json:"count"`
	Missing     int     `json:"missing"`
	Mean        float64 `json:"mean,omitempty"`
	StdDev      float64 `json:"std_dev,omitempty"`
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	Cardinality int     `json:"cardinality,omitempty"`
}
