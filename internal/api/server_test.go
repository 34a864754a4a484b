package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trendlab/internal/config"
	"trendlab/internal/errors"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&config.Config{
		Server:   config.ServerConfig{Port: "8080", APIPort: "8081", GinMode: "test"},
		Upload:   config.UploadConfig{MaxFileSizeMB: 50, PreviewRows: 5},
		Forecast: config.ForecastConfig{MinHorizon: 5, MaxHorizon: 60, DefaultHorizon: 12},
	})
}

func postDataset(t *testing.T, s *Server, path, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("dataset", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func monthlyCSV(months int) string {
	var sb strings.Builder
	sb.WriteString("OrderDate,Sales\n")
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		fmt.Fprintf(&sb, "%s,%.2f\n", start.AddDate(0, i, 0).Format("2006-01-02"), 100.0+0.5*float64(i)+10.0*float64(i%12))
	}
	return sb.String()
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("GET", "/api/v1/healthz", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTimeSeriesEndpoint(t *testing.T) {
	s := testServer(t)

	w := postDataset(t, s, "/api/v1/timeseries", "sales.csv", monthlyCSV(36),
		map[string]string{"column": "Sales", "horizon": "12"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Sales", resp["column"])
	require.EqualValues(t, 12, resp["horizon"])
	require.Contains(t, resp, "stationarity")
	require.Contains(t, resp, "decomposition")

	forecast, ok := resp["forecast"].(map[string]interface{})
	require.True(t, ok, "forecast should be present: %v", resp["forecast_error"])
	require.Len(t, forecast["forecast"], 12)
}

func TestTimeSeriesEndpointClampsHorizon(t *testing.T) {
	s := testServer(t)

	w := postDataset(t, s, "/api/v1/timeseries", "sales.csv", monthlyCSV(36),
		map[string]string{"column": "Sales", "horizon": "999"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 60, resp["horizon"])
}

func TestTimeSeriesEndpointMissingDateColumn(t *testing.T) {
	s := testServer(t)

	w := postDataset(t, s, "/api/v1/timeseries", "plain.csv", "Region,Sales\nNorth,1\nSouth,2\n",
		map[string]string{"column": "Sales"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, errors.CodeMissingDateColumn, resp["code"])
}

func TestTTestEndpoint(t *testing.T) {
	s := testServer(t)

	csv := "Before,After\n20.1,18.2\n22.3,19.5\n19.8,17.9\n21.5,18.8\n20.9,19.1\n23.0,18.4\n"
	w := postDataset(t, s, "/api/v1/ttest", "paired.csv", csv,
		map[string]string{"col1": "Before", "col2": "After"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, true, resp["significant"])
	require.EqualValues(t, 6, resp["n1"])
}

func TestChiSquareEndpointInsufficientCategorical(t *testing.T) {
	s := testServer(t)

	csv := "Region,Sales\nNorth,1\nSouth,2\nNorth,3\n"
	w := postDataset(t, s, "/api/v1/chisquare", "plain.csv", csv,
		map[string]string{"col1": "Region", "col2": "Region"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, errors.CodeInsufficientCategorical, resp["code"])
}

func TestChiSquareEndpoint(t *testing.T) {
	s := testServer(t)

	csv := "Group,Outcome\n" +
		strings.Repeat("A,X\n", 10) +
		strings.Repeat("A,Y\n", 5) +
		strings.Repeat("B,X\n", 3) +
		strings.Repeat("B,Y\n", 12)
	w := postDataset(t, s, "/api/v1/chisquare", "groups.csv", csv,
		map[string]string{"col1": "Group", "col2": "Outcome"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.InDelta(t, 4.8869, resp["statistic"].(float64), 1e-3)
	require.Equal(t, true, resp["significant"])
}

func TestDatasetFileRequired(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("POST", "/api/v1/ttest", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
