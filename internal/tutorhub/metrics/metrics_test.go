package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub/internal/tutorhub/metrics"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.RegisterMetrics(reg)

	assert.Panics(t, func() { metrics.RegisterMetrics(reg) }, "double registration should panic")
}

func TestNewRegistryIsIndependent(t *testing.T) {
	require.NotPanics(t, func() {
		_ = metrics.NewRegistry()
		_ = metrics.NewRegistry()
	})
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/courses", "2xx"))
	beforeErr := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/courses", "5xx"))

	metrics.RecordHTTPRequest("GET", "/api/courses", 200, 10*time.Millisecond)
	metrics.RecordHTTPRequest("GET", "/api/courses", 503, 10*time.Millisecond)

	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/courses", "2xx")), 0)
	assert.InDelta(t, beforeErr+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/courses", "5xx")), 0)
}

func TestRecordAuthOperation(t *testing.T) {
	counter := metrics.AuthOperations.WithLabelValues("login", metrics.OutcomeRejected)
	before := testutil.ToFloat64(counter)

	metrics.RecordAuthOperation("login", metrics.OutcomeRejected)

	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0)
}

func TestRecordCacheLookup(t *testing.T) {
	counter := metrics.CacheLookups.WithLabelValues("courses", metrics.CacheHit)
	before := testutil.ToFloat64(counter)

	metrics.RecordCacheLookup("courses", metrics.CacheHit)

	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0)
}

func TestSetCircuitState(t *testing.T) {
	metrics.SetCircuitState("catalog-cache", 1)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("catalog-cache")), 0)
}
