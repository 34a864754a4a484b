package ui

import (
	"net/http"
	"strconv"

	"trendlab/adapters/charts"
	"trendlab/adapters/timeseries"
	"trendlab/internal/errors"
)

// handleTimeSeriesAnalyze runs the full time-series pipeline for the
// chosen column: line plot, seasonal decomposition, ADF test, and an
// ARIMA(1,1,1) forecast. Decomposition, ADF, and forecast failures are
// non-fatal warnings; the rest of the page still renders.
func (a *App) handleTimeSeriesAnalyze(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Get(w, r)
	sess.Navigate(string(PageTimeSeries))

	view := a.newTimeSeriesView(sess)
	if sess.Table == nil {
		view.Error = "Upload a CSV before running an analysis"
		a.renderTemplate(w, "time_series.html", view)
		return
	}

	dates, err := sess.Table.DateIndex()
	if err != nil {
		view.Error = err.Error()
		a.renderTemplate(w, "time_series.html", view)
		return
	}

	columnName := r.FormValue("column")
	column, ok := sess.Table.Column(columnName)
	if !ok || column.Numeric == nil {
		view.Error = "Select a numeric column to analyze"
		a.renderTemplate(w, "time_series.html", view)
		return
	}
	view.SelectedColumn = column.Name

	horizon := a.clampHorizon(r.FormValue("horizon"))
	view.Horizon = horizon

	series, err := timeseries.BuildSeries(dates, column.Numeric)
	if err != nil {
		view.Error = err.Error()
		a.renderTemplate(w, "time_series.html", view)
		return
	}

	// Line plot of the raw series
	if png, err := charts.LinePlot("Trend Over Time — "+column.Name, series.Timestamps, series.Values); err == nil {
		view.LinePlot = charts.DataURI(png)
	} else {
		a.log.Warn("line plot: %v", err)
	}

	// Seasonal decomposition, fixed period 12
	if decomposition, err := timeseries.Decompose(series); err != nil {
		view.DecompositionWarning = "Decomposition error: " + err.Error()
	} else if panels, err := charts.DecompositionPanels(series.Timestamps, decomposition); err != nil {
		view.DecompositionWarning = "Decomposition error: " + err.Error()
	} else {
		for _, panel := range panels {
			view.DecompositionPanels = append(view.DecompositionPanels, panelView{
				Name: panel.Name,
				URI:  charts.DataURI(panel.Image),
			})
		}
	}

	// ADF stationarity test
	if adf, err := timeseries.ADFTest(series); err != nil {
		view.ADFWarning = err.Error()
	} else {
		view.ADF = adf
	}

	// ARIMA(1,1,1) forecast. Failures surface the underlying reason.
	forecast, err := timeseries.Forecast(column.Name, series, horizon)
	if err != nil {
		view.ForecastWarning = "ARIMA forecast failed: " + unwrapReason(err)
	} else {
		view.Forecast = forecast
		forecastDates := timeseries.ExtendIndex(series.Timestamps, horizon)
		if png, err := charts.HistoryForecast("Forecast — "+column.Name, series.Timestamps, series.Values, forecastDates, forecast.Forecast); err == nil {
			view.ForecastPlot = charts.DataURI(png)
		} else {
			a.log.Warn("forecast plot: %v", err)
		}
	}

	a.renderTemplate(w, "time_series.html", view)
}

// clampHorizon bounds the forecast horizon to the slider range so
// out-of-range values are unreachable regardless of what is submitted.
func (a *App) clampHorizon(raw string) int {
	horizon := a.config.Forecast.DefaultHorizon
	if parsed, err := strconv.Atoi(raw); err == nil {
		horizon = parsed
	}
	if horizon < a.config.Forecast.MinHorizon {
		horizon = a.config.Forecast.MinHorizon
	}
	if horizon > a.config.Forecast.MaxHorizon {
		horizon = a.config.Forecast.MaxHorizon
	}
	return horizon
}

// unwrapReason prefers the underlying cause over wrapper context
func unwrapReason(err error) string {
	if appErr, ok := err.(*errors.AppError); ok && appErr.Cause != nil {
		return appErr.Cause.Error()
	}
	return err.Error()
}
