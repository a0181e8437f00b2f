package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveOperation("add", ResultOK)
	r.ObserveOperation("add", ResultOK)
	r.ObserveOperation("add", ResultInvalid)
	r.IncPersistFailure("write")
	r.SetTasks(7)

	assert.InDelta(t, 2, testutil.ToFloat64(r.operations.WithLabelValues("add", ResultOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.operations.WithLabelValues("add", ResultInvalid)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.persistFailures.WithLabelValues("write")), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(r.tasks), 0)
}

func TestHTTPHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)
	r.SetTasks(3)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "todolist_tasks 3"))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveOperation("delete", ResultNotFound)
	r.IncPersistFailure("read")
	r.SetTasks(1)
}
