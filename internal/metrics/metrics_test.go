package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Logins.WithLabelValues("success").Inc()
	m.Logins.WithLabelValues("failure").Add(2)
	m.XPAwarded.Add(42)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("failure")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.XPAwarded))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Signups.Inc()
	m.ObserveRequest(http.MethodGet, "GET /api/session", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "learnmate_signups_total 1"))
	assert.Contains(t, body, `learnmate_http_request_duration_seconds_count{method="GET",route="GET /api/session",status="200"} 1`)
}
