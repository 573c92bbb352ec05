package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/adapters/excel"
	"gobi/app"
	datasetsvc "gobi/internal/dataset"
	"gobi/internal/errors"
	"gobi/internal/metrics"
)

const salesCSV = "region,units,order_date\neast,10,2024-01-01\nwest,5,2024-01-02\neast,30,2024-01-02\n"

func newTestServer(t *testing.T, maxUpload int64) *Server {
	t.Helper()
	reg := metrics.NewRegistry()
	explorer := app.NewExplorerService(excel.NewLoader(), datasetsvc.NewTempCSVExporter(t.TempDir()), nil, reg, app.DefaultExplorerConfig())
	s, err := NewServer(explorer, reg, Options{Mode: gin.TestMode, MaxUploadBytes: maxUpload, PreviewRows: 5})
	require.NoError(t, err)
	return s
}

func uploadRequest(t *testing.T, name, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("dataset", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("preview_rows", "2"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return serve(s, req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func uploaded(t *testing.T) *Server {
	t.Helper()
	s := newTestServer(t, 1<<20)
	rec := serve(s, uploadRequest(t, "sales.csv", salesCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return s
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, 1<<20)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Interactive Data Exploration Dashboard")
	assert.Contains(t, body, `<option value="correlation_heatmap">Correlation Heatmap</option>`)
	assert.Contains(t, body, "max 1 MB")
}

func TestHealthAndMetrics(t *testing.T) {
	s := uploaded(t)

	health := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil)))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "sales.csv", health["dataset"])
	assert.Equal(t, 3.0, health["rows"])

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gobi_operations_total{operation="upload",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "gobi_dataset_rows 3")
}

func TestUpload(t *testing.T) {
	s := newTestServer(t, 1<<20)

	rec := serve(s, uploadRequest(t, "sales.csv", salesCSV))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, app.MsgLoaded, body["message"])
	assert.Equal(t, true, body["ok"])
	preview := body["preview"].(map[string]interface{})
	assert.Len(t, preview["rows"], 2)
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		status int
		code   string
	}{
		{
			name:   "unsupported extension",
			req:    func(t *testing.T) *http.Request { return uploadRequest(t, "notes.txt", "a\n1\n") },
			status: http.StatusBadRequest,
			code:   errors.CodeUnsupportedFormat,
		},
		{
			name: "no file",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
				req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
				return req
			},
			status: http.StatusBadRequest,
			code:   errors.CodeLoadError,
		},
		{
			name:   "too large",
			req:    func(t *testing.T) *http.Request { return uploadRequest(t, "big.csv", "a\n"+strings.Repeat("1\n", 1<<20)) },
			status: http.StatusRequestEntityTooLarge,
			code:   errors.CodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 1<<20)
			rec := serve(s, tt.req(t))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec)["code"])
		})
	}
}

func TestStatisticsBeforeUpload(t *testing.T) {
	s := newTestServer(t, 1<<20)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgNoDataTab, decode(t, rec)["message"])
}

func TestReadEndpoints(t *testing.T) {
	s := uploaded(t)

	info := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/info", nil)))
	assert.Equal(t, 3.0, info["rows"])

	preview := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/preview?n=1", nil)))
	assert.Len(t, preview["rows"], 1)

	stats := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/statistics", nil)))
	assert.Equal(t, app.MsgStatsComputed, stats["message"])

	cols := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/columns", nil)))
	assert.Equal(t, []interface{}{"units"}, cols["numeric"])
	assert.Equal(t, []interface{}{"order_date"}, cols["date_like"])

	cats := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/categories?column=region", nil)))
	assert.Equal(t, []interface{}{"east", "west"}, cats["choices"])
}

func TestFilterAndDownload(t *testing.T) {
	s := uploaded(t)

	rec := postJSON(t, s, "/api/filter", map[string]interface{}{"column": "region", "categories": []string{"east"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Filtered rows: 2 (out of 3)", decode(t, rec)["message"])

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/filter/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_")
	assert.Equal(t, "region,units,order_date\neast,10,2024-01-01\neast,30,2024-01-02\n", rec.Body.String())

	rec = postJSON(t, s, "/api/filter", map[string]interface{}{"column": "units", "min": 1000})
	assert.Equal(t, "Filtered rows: 0 (out of 3)", decode(t, rec)["message"])
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/filter/download", nil))
	assert.Equal(t, app.MsgNothingToExport, decode(t, rec)["message"])
}

func TestFilter_BadJSON(t *testing.T) {
	s := uploaded(t)
	req := httptest.NewRequest(http.MethodPost, "/api/filter", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeInvalidInput, decode(t, rec)["code"])
}

func TestPlot(t *testing.T) {
	s := uploaded(t)

	rec := postJSON(t, s, "/api/plot", map[string]interface{}{"kind": "Category Bar", "category": "region", "value": "units"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "✅ Bar chart created: sum of units by region.", body["message"])
	require.NotNil(t, body["figure"])

	rec = postJSON(t, s, "/api/plot", map[string]interface{}{"kind": "correlation_heatmap"})
	body = decode(t, rec)
	assert.Equal(t, app.MsgHeatmapFailed, body["message"])
	assert.Nil(t, body["figure"])
}

func TestPlotPNG(t *testing.T) {
	s := uploaded(t)

	rec := postJSON(t, s, "/api/plot.png", map[string]interface{}{"kind": "time_series", "date_column": "order_date", "value": "units", "width": 320, "height": 240})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = postJSON(t, s, "/api/plot.png", map[string]interface{}{"kind": "distribution", "column": "units", "style": "box"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeUnsupportedFormat, decode(t, rec)["code"])
}

func TestInsights(t *testing.T) {
	s := uploaded(t)

	rec := postJSON(t, s, "/api/insights", map[string]interface{}{"group": "region", "value": "units", "n": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "✅ Insights based on 'region' and 'units'.", body["message"])
	rows := body["top_n"].(map[string]interface{})["rows"].([]interface{})
	// n is clamped up to the slider minimum
	assert.Len(t, rows, 2)
	assert.Equal(t, "east", rows[0].(map[string]interface{})["key"])
}

func TestReport(t *testing.T) {
	s := uploaded(t)

	body := decode(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/report", nil)))
	assert.Contains(t, body["markdown"], "# Data report: sales.csv")

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/report.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<table>")
}
