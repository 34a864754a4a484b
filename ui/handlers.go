package ui

import (
	"net/http"

	"trendlab/internal/errors"
)

// handleIndex renders whichever page the session currently points at
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Get(w, r)
	a.renderPage(w, sess, "")
}

// handleNavigate mutates the session's page and redirects back to the
// dashboard. Unknown targets leave the page untouched.
func (a *App) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Get(w, r)
	sess.Navigate(r.FormValue("target"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleUpload ingests a dataset file into the session and re-renders
// the current page. The previous table is discarded wholesale.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Get(w, r)

	maxBytes := a.config.Upload.MaxFileSizeMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("dataset")
	if err != nil {
		a.renderPage(w, sess, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		a.renderPage(w, sess, "File exceeds the upload size limit")
		return
	}

	parsed, err := a.reader.Load(header.Filename, file)
	if err != nil {
		a.log.Warn("upload %s rejected: %v", header.Filename, err)
		sess.Table = nil
		sess.Filename = ""
		a.renderPage(w, sess, err.Error())
		return
	}

	sess.Table = parsed
	sess.Filename = header.Filename
	a.log.Info("session %s loaded %s: %d rows, %d columns", sess.ID, header.Filename, parsed.RowCount, len(parsed.Columns))
	a.renderPage(w, sess, "")
}

// renderPage dispatches to the template matching the session's page.
// The time-series page surfaces the missing-date-column error as soon
// as a table without a date index is present.
func (a *App) renderPage(w http.ResponseWriter, sess *Session, errMsg string) {
	switch sess.Current() {
	case PageTimeSeries:
		view := a.newTimeSeriesView(sess)
		view.Error = errMsg
		if errMsg == "" && view.HasTable && sess.Table.DateColumn == "" {
			view.Error = errors.MissingDateColumn().Error()
		}
		a.renderTemplate(w, "time_series.html", view)
	case PageHypothesis:
		view := a.newHypothesisView(sess)
		view.Error = errMsg
		a.renderTemplate(w, "hypothesis.html", view)
	default:
		a.renderTemplate(w, "home.html", &pageView{Title: "TrendLab", Page: PageHome, Error: errMsg})
	}
}
