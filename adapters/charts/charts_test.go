package charts

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trendlab/domain/analysis"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testDates(n int) []time.Time {
	dates := make([]time.Time, n)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, i, 0)
	}
	return dates
}

func testValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 50 + 5*math.Sin(float64(i))
	}
	return values
}

func TestLinePlot_RendersPNG(t *testing.T) {
	png, err := LinePlot("Sales", testDates(24), testValues(24))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG")
}

func TestLinePlot_TooFewPoints(t *testing.T) {
	_, err := LinePlot("Sales", testDates(1), testValues(1))
	require.Error(t, err)
}

func TestLinePlot_SkipsMissingValues(t *testing.T) {
	values := testValues(24)
	values[3] = math.NaN()
	values[10] = math.NaN()

	png, err := LinePlot("Sales", testDates(24), values)
	require.NoError(t, err)
	require.NotEmpty(t, png)
}

func TestDecompositionPanels_FourPanels(t *testing.T) {
	n := 36
	values := testValues(n)
	result := &analysis.DecompositionResult{
		Observed: values,
		Trend:    values,
		Seasonal: values,
		Residual: values,
		Period:   12,
	}

	panels, err := DecompositionPanels(testDates(n), result)
	require.NoError(t, err)
	require.Len(t, panels, 4)

	names := make([]string, len(panels))
	for i, panel := range panels {
		names[i] = panel.Name
		require.True(t, bytes.HasPrefix(panel.Image, pngMagic))
	}
	require.Equal(t, []string{"Observed", "Trend", "Seasonal", "Residual"}, names)
}

func TestHistoryForecast_RendersPNG(t *testing.T) {
	histDates := testDates(24)
	forecastDates := make([]time.Time, 6)
	last := histDates[len(histDates)-1]
	for i := range forecastDates {
		last = last.AddDate(0, 1, 0)
		forecastDates[i] = last
	}

	png, err := HistoryForecast("Forecast", histDates, testValues(24), forecastDates, testValues(6))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte{1, 2, 3})
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
