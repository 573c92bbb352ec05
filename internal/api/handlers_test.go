package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/adapters/excel"
	"gobi/app"
	datasetsvc "gobi/internal/dataset"
	"gobi/internal/errors"
	"gobi/internal/metrics"
)

const salesCSV = "region,units,price\neast,10,1.5\nwest,5,2.5\neast,30,0.5\nnorth,2,4.0\n"

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := metrics.NewRegistry()
	explorer := app.NewExplorerService(excel.NewLoader(), datasetsvc.NewTempCSVExporter(t.TempDir()), nil, reg, app.DefaultExplorerConfig())
	return NewHandler(explorer, reg, 1<<20).Routes()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, h http.Handler, name, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("dataset", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/datasets", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return do(h, req)
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(h, req)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	return do(h, httptest.NewRequest(http.MethodGet, path, nil))
}

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func loadedRouter(t *testing.T) http.Handler {
	t.Helper()
	h := newRouter(t)
	rec := upload(t, h, "sales.csv", salesCSV)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return h
}

func TestUploadDataset(t *testing.T) {
	h := newRouter(t)

	rec := upload(t, h, "sales.csv", salesCSV)
	require.Equal(t, http.StatusCreated, rec.Code)
	res := body(t, rec)
	assert.Equal(t, app.MsgLoaded, res["message"])
	assert.Equal(t, 4.0, res["info"].(map[string]interface{})["rows"])

	rec = upload(t, h, "sales.pdf", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res = body(t, rec)
	assert.Equal(t, errors.CodeUnsupportedFormat, res["code"])
	assert.Equal(t, excel.MsgUnsupportedFormat, res["error"])
}

func TestEndpointsBeforeUpload(t *testing.T) {
	h := newRouter(t)

	tests := []struct {
		name    string
		rec     *httptest.ResponseRecorder
		message string
	}{
		{"info", get(h, "/v1/info"), app.MsgNoDataTab},
		{"statistics", get(h, "/v1/statistics"), app.MsgNoDataTab},
		{"filter", post(h, "/v1/filter", `{"column":"units"}`), app.MsgNoData},
		{"charts", post(h, "/v1/charts", `{"kind":"correlation_heatmap"}`), app.MsgNoData},
		{"insights", post(h, "/v1/insights", `{"group":"region","value":"units"}`), app.MsgNoDataInsights},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, tt.rec.Code)
			assert.Equal(t, tt.message, body(t, tt.rec)["message"])
		})
	}

	assert.Equal(t, http.StatusNoContent, get(h, "/v1/filter/export").Code)
}

func TestReadEndpoints(t *testing.T) {
	h := loadedRouter(t)

	preview := body(t, get(h, "/v1/preview?n=3"))
	assert.Len(t, preview["rows"], 3)

	stats := body(t, get(h, "/v1/statistics"))
	assert.Equal(t, app.MsgStatsComputed, stats["message"])
	profile := stats["profile"].(map[string]interface{})
	assert.Len(t, profile["numeric"], 2)

	cats := body(t, get(h, "/v1/columns/region/categories"))
	assert.Equal(t, []interface{}{"east", "north", "west"}, cats["choices"])

	health := body(t, get(h, "/healthz"))
	assert.Equal(t, "ok", health["status"])
}

func TestFilterExport(t *testing.T) {
	h := loadedRouter(t)

	rec := post(h, "/v1/filter", `{"column":"units","min":5,"max":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := body(t, rec)
	assert.Equal(t, "Filtered rows: 2 (out of 4)", res["message"])
	assert.Equal(t, 2.0, res["matched"])

	rec = get(h, "/v1/filter/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "region,units,price\neast,10,1.5\nwest,5,2.5\n", rec.Body.String())

	rec = post(h, "/v1/filter", `{"column":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeInvalidInput, body(t, rec)["code"])
}

func TestCharts(t *testing.T) {
	h := loadedRouter(t)

	res := body(t, post(h, "/v1/charts", `{"kind":"Correlation Heatmap"}`))
	assert.Equal(t, app.MsgHeatmapCreated, res["message"])
	fig := res["figure"].(map[string]interface{})
	trace := fig["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "heatmap", trace["type"])

	rec := post(h, "/v1/charts", `{"kind":"distribution","column":"units","style":"hist","format":"png","width":300,"height":200}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = post(h, "/v1/charts?format=png", `{"kind":"distribution"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeValidationError, body(t, rec)["code"])
}

func TestInsights(t *testing.T) {
	h := loadedRouter(t)

	res := body(t, post(h, "/v1/insights", `{"group":"region","value":"units","n":1,"aggregation":"mean"}`))
	assert.Equal(t, "✅ Insights based on 'region' and 'units'.", res["message"])
	top := res["top_n"].(map[string]interface{})
	assert.Equal(t, "mean", top["aggregation"])
	rows := top["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "east", rows[0].(map[string]interface{})["key"])
	assert.Equal(t, 20.0, rows[0].(map[string]interface{})["value"])
}

func TestReport(t *testing.T) {
	h := loadedRouter(t)

	res := body(t, get(h, "/v1/report"))
	assert.Contains(t, res["markdown"], "## Numeric summary")

	rec := get(h, "/v1/report?format=html")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1")
}

func TestMetrics(t *testing.T) {
	h := loadedRouter(t)
	get(h, "/v1/statistics")

	rec := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gobi_operations_total{operation="statistics",outcome="ok"} 1`)
}
