package charts

import (
	"bytes"
	"encoding/base64"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/errgroup"

	"trendlab/domain/analysis"
	"trendlab/internal/errors"
)

const (
	plotWidth   = 960
	plotHeight  = 320
	panelHeight = 220
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2.0,
	}
}

// LinePlot renders one series against its date index as a PNG
func LinePlot(title string, dates []time.Time, values []float64) ([]byte, error) {
	xs, ys := dropNaNPoints(dates, values)
	if len(ys) < 2 {
		return nil, errors.AnalysisFailed("not enough points to plot", nil)
	}

	ch := chart.Chart{
		Title:  title,
		Width:  plotWidth,
		Height: plotHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 8},
		},
		XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(chart.ColorBlue),
			},
		},
	}

	return renderPNG(&ch)
}

// Panel is one rendered decomposition component
type Panel struct {
	Name  string
	Image []byte
}

// DecompositionPanels renders the observed/trend/seasonal/residual panels.
// The four charts are independent, so they render concurrently.
func DecompositionPanels(dates []time.Time, result *analysis.DecompositionResult) ([]Panel, error) {
	components := []struct {
		name   string
		values []float64
		color  drawing.Color
	}{
		{"Observed", result.Observed, chart.ColorBlue},
		{"Trend", result.Trend, chart.ColorGreen},
		{"Seasonal", result.Seasonal, chart.ColorAlternateGray},
		{"Residual", result.Residual, chart.ColorRed},
	}

	panels := make([]Panel, len(components))
	var g errgroup.Group
	for i, component := range components {
		g.Go(func() error {
			xs, ys := dropNaNPoints(dates, component.values)
			if len(ys) < 2 {
				return errors.AnalysisFailed("not enough points in "+component.name+" panel", nil)
			}
			ch := chart.Chart{
				Title:  component.name,
				Width:  plotWidth,
				Height: panelHeight,
				Background: chart.Style{
					Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 8},
				},
				XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
				Series: []chart.Series{
					chart.TimeSeries{
						Name:    component.name,
						XValues: xs,
						YValues: ys,
						Style:   lineStyle(component.color),
					},
				},
			}
			img, err := renderPNG(&ch)
			if err != nil {
				return err
			}
			panels[i] = Panel{Name: component.name, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return panels, nil
}

// HistoryForecast renders the observed series and the forecast overlay
// as two legended series named exactly "History" and "Forecast".
func HistoryForecast(title string, histDates []time.Time, history []float64, forecastDates []time.Time, forecast []float64) ([]byte, error) {
	histX, histY := dropNaNPoints(histDates, history)
	if len(histY) < 2 || len(forecast) < 1 {
		return nil, errors.AnalysisFailed("not enough points to plot forecast", nil)
	}

	// Anchor the forecast line to the last observed point so the two
	// series join visually.
	fcX := append([]time.Time{histX[len(histX)-1]}, forecastDates...)
	fcY := append([]float64{histY[len(histY)-1]}, forecast...)

	ch := chart.Chart{
		Title:  title,
		Width:  plotWidth,
		Height: plotHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 32},
		},
		XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "History",
				XValues: histX,
				YValues: histY,
				Style:   lineStyle(chart.ColorBlue),
			},
			chart.TimeSeries{
				Name:    "Forecast",
				XValues: fcX,
				YValues: fcY,
				Style:   lineStyle(chart.ColorOrange),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return renderPNG(&ch)
}

// DataURI wraps a rendered PNG as an inline image source
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func renderPNG(ch *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.AnalysisFailed("chart rendering failed", err)
	}
	return buf.Bytes(), nil
}

// dropNaNPoints filters out points whose Y value is NaN, keeping X and Y
// aligned.
func dropNaNPoints(dates []time.Time, values []float64) ([]time.Time, []float64) {
	n := len(values)
	if len(dates) < n {
		n = len(dates)
	}
	xs := make([]time.Time, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		xs = append(xs, dates[i])
		ys = append(ys, values[i])
	}
	return xs, ys
}
