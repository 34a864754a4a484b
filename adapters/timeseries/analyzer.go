package timeseries

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/arima"
	gostats "github.com/sartorproj/goarima/stats"
	goseries "github.com/sartorproj/goarima/timeseries"

	"trendlab/domain/analysis"
	"trendlab/internal/errors"
)

// SeasonalPeriod is the fixed decomposition period. Monthly seasonality
// is assumed regardless of the actual sampling frequency.
const SeasonalPeriod = 12

// ARIMA order is fixed at (1,1,1)
const (
	arimaP = 1
	arimaD = 1
	arimaQ = 1
)

// BuildSeries pairs a numeric column with its date index, dropping rows
// where the value is missing.
func BuildSeries(dates []time.Time, values []float64) (*goseries.Series, error) {
	if len(dates) != len(values) {
		return nil, errors.AnalysisFailed("date index and value column have mismatched lengths", nil)
	}

	cleanDates := make([]time.Time, 0, len(values))
	cleanValues := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		cleanDates = append(cleanDates, dates[i])
		cleanValues = append(cleanValues, v)
	}
	if len(cleanValues) == 0 {
		return nil, errors.AnalysisFailed("column has no numeric observations", nil)
	}

	series, err := goseries.NewWithTimestamps(cleanDates, cleanValues)
	if err != nil {
		return nil, errors.AnalysisFailed("failed to build time series", err)
	}
	return series, nil
}

// Decompose runs additive seasonal decomposition with the fixed period.
// Series shorter than two full periods cannot be decomposed; the error is
// meant for a non-fatal warning banner.
func Decompose(series *goseries.Series) (*analysis.DecompositionResult, error) {
	result := gostats.Decompose(series, SeasonalPeriod, "additive")
	if result == nil {
		return nil, errors.AnalysisFailed(
			fmt.Sprintf("decomposition requires at least %d observations (two full periods of %d), got %d",
				2*SeasonalPeriod, SeasonalPeriod, series.Len()), nil)
	}

	return &analysis.DecompositionResult{
		Observed: series.Values,
		Trend:    result.Trend.Values,
		Seasonal: result.Seasonal.Values,
		Residual: result.Residual.Values,
		Period:   SeasonalPeriod,
	}, nil
}

// ADFTest runs the augmented Dickey-Fuller stationarity test with
// automatic lag selection. The verdict applies the fixed p < 0.05
// threshold.
func ADFTest(series *goseries.Series) (*analysis.StationarityResult, error) {
	// Automatic lag selection is floor((n-1)^(1/3)); the regression
	// needs 10 usable rows after losing the lags, so n must be >= 13.
	n := series.Len()
	lags := int(math.Floor(math.Cbrt(float64(n - 1))))
	if n < 10 || n-lags-1 < 10 {
		return nil, errors.AnalysisFailed(
			fmt.Sprintf("ADF test requires at least 13 observations, got %d", n), nil)
	}

	result := gostats.ADF(series, 0)
	if result == nil {
		// The only remaining failure is a singular OLS regression
		return nil, errors.AnalysisFailed(
			"ADF regression is singular; series may be perfectly deterministic", nil)
	}

	return &analysis.StationarityResult{
		Statistic:  result.Statistic,
		PValue:     result.PValue,
		Lags:       result.Lags,
		NObs:       result.NObs,
		Stationary: analysis.Significant(result.PValue),
	}, nil
}

// Forecast fits a fixed-order ARIMA(1,1,1) model and projects the chosen
// horizon. Fitting failures carry the underlying reason so the UI can
// surface it instead of a generic message.
func Forecast(column string, series *goseries.Series, horizon int) (*analysis.ForecastResult, error) {
	if horizon < 1 {
		return nil, errors.InvalidInput("forecast horizon must be positive")
	}

	model := arima.New(arimaP, arimaD, arimaQ)
	if err := model.Fit(series); err != nil {
		return nil, errors.AnalysisFailed("ARIMA(1,1,1) fit failed", err)
	}

	forecast, err := model.Predict(horizon)
	if err != nil {
		return nil, errors.AnalysisFailed("ARIMA forecast failed", err)
	}

	return &analysis.ForecastResult{
		Column:   column,
		Order:    [3]int{arimaP, arimaD, arimaQ},
		History:  series.Values,
		Forecast: forecast,
		Horizon:  horizon,
	}, nil
}

// ExtendIndex projects the date index forward by the forecast horizon
// using the median spacing of the observed dates.
func ExtendIndex(dates []time.Time, horizon int) []time.Time {
	if len(dates) == 0 || horizon < 1 {
		return nil
	}

	step := medianSpacing(dates)
	extended := make([]time.Time, horizon)
	last := dates[len(dates)-1]
	for i := 0; i < horizon; i++ {
		last = last.Add(step)
		extended[i] = last
	}
	return extended
}

func medianSpacing(dates []time.Time) time.Duration {
	if len(dates) < 2 {
		return 24 * time.Hour
	}
	deltas := make([]time.Duration, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		deltas = append(deltas, dates[i].Sub(dates[i-1]))
	}
	// insertion sort, the slice is small
	for i := 1; i < len(deltas); i++ {
		for j := i; j > 0 && deltas[j] < deltas[j-1]; j-- {
			deltas[j], deltas[j-1] = deltas[j-1], deltas[j]
		}
	}
	return deltas[len(deltas)/2]
}
