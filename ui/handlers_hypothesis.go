package ui

import (
	"net/http"

	"trendlab/adapters/stats"
	"trendlab/domain/table"
	"trendlab/internal/errors"
)

// handleTTest runs an independent two-sample t-test on two numeric
// columns chosen from the uploaded table.
func (a *App) handleTTest(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Get(w, r)
	sess.Navigate(string(PageHypothesis))

	view := a.newHypothesisView(sess)
	view.SelectedTest = "ttest"
	if sess.Table == nil {
		view.Error = "Upload a CSV before running a test"
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	view.Col1 = r.FormValue("col1")
	view.Col2 = r.FormValue("col2")

	col1, ok1 := sess.Table.Column(view.Col1)
	col2, ok2 := sess.Table.Column(view.Col2)
	if !ok1 || !ok2 || col1.Type != table.ColumnNumeric || col2.Type != table.ColumnNumeric {
		view.TestError = "Select two numeric columns"
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	result, err := stats.TTest(col1.Name, col2.Name, col1.Numeric, col2.Numeric)
	if err != nil {
		view.TestError = err.Error()
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	view.TTest = result
	a.renderTemplate(w, "hypothesis.html", view)
}

// handleChiSquare runs a chi-square test of independence on two
// categorical columns. Tables with fewer than two categorical columns
// are rejected before any selection is honored.
func (a *App) handleChiSquare(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Get(w, r)
	sess.Navigate(string(PageHypothesis))

	view := a.newHypothesisView(sess)
	view.SelectedTest = "chisquare"
	if sess.Table == nil {
		view.Error = "Upload a CSV before running a test"
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	categorical := sess.Table.CategoricalColumns()
	if len(categorical) < 2 {
		view.TestError = errors.InsufficientCategoricalColumns(len(categorical)).Error()
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	view.Col1 = r.FormValue("col1")
	view.Col2 = r.FormValue("col2")

	col1, ok1 := sess.Table.Column(view.Col1)
	col2, ok2 := sess.Table.Column(view.Col2)
	if !ok1 || !ok2 || col1.Type != table.ColumnCategorical || col2.Type != table.ColumnCategorical {
		view.TestError = "Select two categorical columns"
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	result, err := stats.ChiSquare(col1.Name, col2.Name, col1.Raw, col2.Raw)
	if err != nil {
		view.TestError = err.Error()
		a.renderTemplate(w, "hypothesis.html", view)
		return
	}

	view.ChiSquare = result
	a.renderTemplate(w, "hypothesis.html", view)
}
