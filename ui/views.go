package ui

import (
	"trendlab/adapters/stats"
	"trendlab/domain/analysis"
)

// pageView is the shared header state every page template receives
type pageView struct {
	Title string
	Page  Page
	Error string
}

// previewView is the head-rows table shown after an upload
type previewView struct {
	Header []string
	Rows   [][]string
}

// timeSeriesView backs the time-series screen
type timeSeriesView struct {
	pageView
	HasTable       bool
	Filename       string
	RowCount       int
	Preview        previewView
	Summaries      []analysis.ColumnSummary
	NumericColumns []string

	SelectedColumn string
	Horizon        int
	MinHorizon     int
	MaxHorizon     int

	LinePlot             string
	DecompositionPanels  []panelView
	DecompositionWarning string
	ADF                  *analysis.StationarityResult
	ADFWarning           string
	Forecast             *analysis.ForecastResult
	ForecastPlot         string
	ForecastWarning      string
}

type panelView struct {
	Name string
	URI  string
}

// hypothesisView backs the hypothesis-testing screen
type hypothesisView struct {
	pageView
	HasTable           bool
	Filename           string
	RowCount           int
	Preview            previewView
	Summaries          []analysis.ColumnSummary
	NumericColumns     []string
	CategoricalColumns []string

	SelectedTest string
	Col1         string
	Col2         string
	TTest        *analysis.TTestResult
	ChiSquare    *analysis.ChiSquareResult
	TestError    string
}

// newTimeSeriesView assembles the base state of the time-series page
// from the session. Analysis results are filled in by the handler.
func (a *App) newTimeSeriesView(sess *Session) *timeSeriesView {
	view := &timeSeriesView{
		pageView: pageView{
			Title: "Time Series Analysis",
			Page:  PageTimeSeries,
		},
		Horizon:    a.config.Forecast.DefaultHorizon,
		MinHorizon: a.config.Forecast.MinHorizon,
		MaxHorizon: a.config.Forecast.MaxHorizon,
	}

	if sess.Table == nil {
		return view
	}

	view.HasTable = true
	view.Filename = sess.Filename
	view.RowCount = sess.Table.RowCount

	// Without a date index the page stops at the error banner and no
	// further computation is offered.
	if sess.Table.DateColumn == "" {
		return view
	}

	view.Preview = previewView{
		Header: sess.Table.Header(),
		Rows:   sess.Table.Head(a.config.Upload.PreviewRows),
	}
	view.Summaries = stats.Summarize(sess.Table)
	view.NumericColumns = sess.Table.NumericColumns()
	return view
}

// newHypothesisView assembles the base state of the hypothesis page
func (a *App) newHypothesisView(sess *Session) *hypothesisView {
	view := &hypothesisView{
		pageView: pageView{
			Title: "Hypothesis Testing",
			Page:  PageHypothesis,
		},
		SelectedTest: "ttest",
	}

	if sess.Table == nil {
		return view
	}

	view.HasTable = true
	view.Filename = sess.Filename
	view.RowCount = sess.Table.RowCount
	view.Preview = previewView{
		Header: sess.Table.Header(),
		Rows:   sess.Table.Head(a.config.Upload.PreviewRows),
	}
	view.Summaries = stats.Summarize(sess.Table)
	view.NumericColumns = sess.Table.NumericColumns()
	view.CategoricalColumns = sess.Table.CategoricalColumns()
	return view
}
