package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trendlab/adapters/stats"
	"trendlab/adapters/timeseries"
	"trendlab/domain/table"
	"trendlab/internal/errors"
)

// timeSeriesResponse is the JSON body of POST /api/v1/timeseries.
// Decomposition, ADF, and forecast failures are reported inline rather
// than failing the whole request.
type timeSeriesResponse struct {
	Column             string      `json:"column"`
	Horizon            int         `json:"horizon"`
	Observations       int         `json:"observations"`
	Decomposition      interface{} `json:"decomposition,omitempty"`
	DecompositionError string      `json:"decomposition_error,omitempty"`
	Stationarity       interface{} `json:"stationarity,omitempty"`
	StationarityError  string      `json:"stationarity_error,omitempty"`
	Forecast           interface{} `json:"forecast,omitempty"`
	ForecastError      string      `json:"forecast_error,omitempty"`
}

// loadTable ingests the multipart "dataset" file of the request.
// Replies with an error and returns nil when ingestion fails.
func (s *Server) loadTable(c *gin.Context) *table.Table {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset file is required", "code": errors.CodeInvalidInput})
		return nil
	}
	defer file.Close()

	parsed, err := s.reader.Load(header.Filename, file)
	if err != nil {
		s.abortWithError(c, err)
		return nil
	}
	return parsed
}

// abortWithError maps application error codes onto HTTP statuses
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeIngestionFailed:
		status = http.StatusBadRequest
	case errors.CodeMissingDateColumn, errors.CodeInsufficientCategorical, errors.CodeAnalysisFailed:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

// handleTimeSeries runs decomposition, the ADF test, and an ARIMA
// forecast on one numeric column of the uploaded dataset.
func (s *Server) handleTimeSeries(c *gin.Context) {
	parsed := s.loadTable(c)
	if parsed == nil {
		return
	}

	dates, err := parsed.DateIndex()
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	column, ok := parsed.Column(c.PostForm("column"))
	if !ok || column.Type != table.ColumnNumeric {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column must name a numeric column", "code": errors.CodeInvalidInput})
		return
	}

	horizon := s.clampHorizon(c.PostForm("horizon"))

	series, err := timeseries.BuildSeries(dates, column.Numeric)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	resp := timeSeriesResponse{
		Column:       column.Name,
		Horizon:      horizon,
		Observations: len(series.Values),
	}

	if decomposition, err := timeseries.Decompose(series); err != nil {
		resp.DecompositionError = err.Error()
	} else {
		resp.Decomposition = decomposition
	}

	if adf, err := timeseries.ADFTest(series); err != nil {
		resp.StationarityError = err.Error()
	} else {
		resp.Stationarity = adf
	}

	if forecast, err := timeseries.Forecast(column.Name, series, horizon); err != nil {
		resp.ForecastError = err.Error()
	} else {
		resp.Forecast = forecast
	}

	c.JSON(http.StatusOK, resp)
}

// handleTTest runs an independent two-sample t-test on two numeric columns
func (s *Server) handleTTest(c *gin.Context) {
	parsed := s.loadTable(c)
	if parsed == nil {
		return
	}

	col1, ok1 := parsed.Column(c.PostForm("col1"))
	col2, ok2 := parsed.Column(c.PostForm("col2"))
	if !ok1 || !ok2 || col1.Type != table.ColumnNumeric || col2.Type != table.ColumnNumeric {
		c.JSON(http.StatusBadRequest, gin.H{"error": "col1 and col2 must name numeric columns", "code": errors.CodeInvalidInput})
		return
	}

	result, err := stats.TTest(col1.Name, col2.Name, col1.Numeric, col2.Numeric)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleChiSquare runs a chi-square test of independence on two
// categorical columns. Datasets with fewer than two categorical
// columns are rejected regardless of the selection.
func (s *Server) handleChiSquare(c *gin.Context) {
	parsed := s.loadTable(c)
	if parsed == nil {
		return
	}

	categorical := parsed.CategoricalColumns()
	if len(categorical) < 2 {
		s.abortWithError(c, errors.InsufficientCategoricalColumns(len(categorical)))
		return
	}

	col1, ok1 := parsed.Column(c.PostForm("col1"))
	col2, ok2 := parsed.Column(c.PostForm("col2"))
	if !ok1 || !ok2 || col1.Type != table.ColumnCategorical || col2.Type != table.ColumnCategorical {
		c.JSON(http.StatusBadRequest, gin.H{"error": "col1 and col2 must name categorical columns", "code": errors.CodeInvalidInput})
		return
	}

	result, err := stats.ChiSquare(col1.Name, col2.Name, col1.Raw, col2.Raw)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// clampHorizon bounds the requested forecast horizon to the configured range
func (s *Server) clampHorizon(raw string) int {
	horizon := s.config.Forecast.DefaultHorizon
	if parsed, err := strconv.Atoi(raw); err == nil {
		horizon = parsed
	}
	if horizon < s.config.Forecast.MinHorizon {
		horizon = s.config.Forecast.MinHorizon
	}
	if horizon > s.config.Forecast.MaxHorizon {
		horizon = s.config.Forecast.MaxHorizon
	}
	return horizon
}
