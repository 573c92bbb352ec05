package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Observe(t *testing.T) {
	r := NewRegistry()

	r.Observe("upload", OutcomeOK, 10*time.Millisecond)
	r.Observe("upload", OutcomeOK, 20*time.Millisecond)
	r.Observe("upload", OutcomeError, time.Millisecond)
	done := r.Track("plot")
	done(OutcomeWarning)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("upload", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("upload", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("plot", OutcomeWarning)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.durations))
}

func TestRegistry_DatasetRows(t *testing.T) {
	r := NewRegistry()
	r.SetDatasetRows(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(r.rows))
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.Observe("upload", OutcomeOK, time.Second)
		r.Track("plot")(OutcomeOK)
		r.SetDatasetRows(3)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.Observe("statistics", OutcomeOK, time.Millisecond)
	r.SetDatasetRows(7)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `gobi_operations_total{operation="statistics",outcome="ok"} 1`)
	assert.Contains(t, body, "gobi_dataset_rows 7")
	assert.Contains(t, body, "gobi_operation_duration_seconds_bucket")
}
