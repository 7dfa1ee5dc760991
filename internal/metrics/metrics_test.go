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

func TestObserveFetch(t *testing.T) {
	c := New()

	c.ObserveFetch("github", OutcomeOK, 120*time.Millisecond, 365)
	c.ObserveFetch("github", OutcomeError, time.Second, 0)
	c.ObserveFetch("github", OutcomeError, time.Second, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.ProviderFetches.WithLabelValues("github", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ProviderFetches.WithLabelValues("github", OutcomeError)))
	assert.Equal(t, 365.0, testutil.ToFloat64(c.ProviderDays.WithLabelValues("github")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveFetch("github", OutcomeOK, 0, 1)
		c.ObserveHTTP("GET", "/", 200, 0)
	})
}

func TestHandler(t *testing.T) {
	c := New()
	c.ObserveHTTP(http.MethodGet, "/projects", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `portfolio_http_requests_total{method="GET",route="/projects",status="200"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveFetch("github", OutcomeOK, time.Millisecond, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ProviderFetches.WithLabelValues("github", OutcomeOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ProviderFetches.WithLabelValues("github", OutcomeOK)))
}
