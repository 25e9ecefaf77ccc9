package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	m := Init(true)
	assert.NotNil(t, m)

	// Type assert to concrete Metrics to access fields
	metrics, ok := m.(*Metrics)
	assert.True(t, ok, "Init(true) should return *Metrics")
	assert.NotNil(t, metrics.LinkCallbacksTotal)
	assert.NotNil(t, metrics.TokenRefreshesTotal)
	assert.NotNil(t, metrics.ProviderAPICallsTotal)
	assert.NotNil(t, metrics.HTTPRequestsTotal)
}

func TestInitNoop(t *testing.T) {
	m := Init(false)
	assert.NotNil(t, m)

	_, ok := m.(*NoopMetrics)
	assert.True(t, ok, "Init(false) should return *NoopMetrics")
}

func TestGetMetrics(t *testing.T) {
	m1 := GetMetrics()
	assert.NotNil(t, m1)

	m2 := GetMetrics()
	assert.Same(t, m1, m2, "GetMetrics should return the same instance")
}

func TestRecordLinkCallback(t *testing.T) {
	m := GetMetrics()
	before := testutil.ToFloat64(m.LinkCallbacksTotal.WithLabelValues("google", "state_invalid"))

	m.RecordLinkCallback("google", "state_invalid")
	m.RecordLinkCallback("google", "state_invalid")

	after := testutil.ToFloat64(m.LinkCallbacksTotal.WithLabelValues("google", "state_invalid"))
	assert.InDelta(t, 2, after-before, 0.001)
}

func TestRecordStateTake(t *testing.T) {
	m := GetMetrics()
	found := testutil.ToFloat64(m.LinkStateTakesTotal.WithLabelValues("found"))
	missing := testutil.ToFloat64(m.LinkStateTakesTotal.WithLabelValues("missing"))

	m.RecordStateTake(true)
	m.RecordStateTake(false)
	m.RecordStateTake(false)

	assert.InDelta(t, 1, testutil.ToFloat64(m.LinkStateTakesTotal.WithLabelValues("found"))-found, 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(m.LinkStateTakesTotal.WithLabelValues("missing"))-missing, 0.001)
}

func TestRecordAccessTokenCache(t *testing.T) {
	m := GetMetrics()
	hits := testutil.ToFloat64(m.AccessTokenCacheTotal.WithLabelValues("microsoft", "hit"))

	m.RecordAccessTokenCache("microsoft", true)
	m.RecordAccessTokenCache("microsoft", false)

	assert.InDelta(t, 1, testutil.ToFloat64(m.AccessTokenCacheTotal.WithLabelValues("microsoft", "hit"))-hits, 0.001)
}

func TestRecordTokenRefresh(t *testing.T) {
	m := Init(true)

	m.RecordTokenRefresh("google", true)
	m.RecordTokenRefresh("google", false)
}

func TestRecordProviderAPICall(t *testing.T) {
	m := Init(true)

	m.RecordProviderAPICall("google", "list", true, 120*time.Millisecond)
	m.RecordProviderAPICall("microsoft", "metadata", false, 2*time.Second)
}

func TestRecordAggregation(t *testing.T) {
	m := GetMetrics()
	before := testutil.ToFloat64(m.AggregationProviderFails)

	m.RecordAggregation(3, 0)
	m.RecordAggregation(3, 2)

	assert.InDelta(t, 2, testutil.ToFloat64(m.AggregationProviderFails)-before, 0.001)
}

func TestSetLinkedAccountsCount(t *testing.T) {
	m := GetMetrics()

	m.SetLinkedAccountsCount("google", 7)
	assert.InDelta(t, 7, testutil.ToFloat64(m.LinkedAccounts.WithLabelValues("google")), 0.001)

	m.SetLinkedAccountsCount("google", 3)
	assert.InDelta(t, 3, testutil.ToFloat64(m.LinkedAccounts.WithLabelValues("google")), 0.001)
}

func TestRecordDisconnectAndLinkStart(t *testing.T) {
	m := Init(true)

	m.RecordLinkStart("google", true)
	m.RecordLinkStart("microsoft", false)
	m.RecordDisconnect("google")
	m.RecordDatabaseQueryError("count_linked_accounts")
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()

	// Every call must be safe without any Prometheus registration
	m.RecordLinkStart("google", true)
	m.RecordLinkCallback("google", "success")
	m.RecordDisconnect("google")
	m.RecordStateTake(true)
	m.RecordTokenRefresh("google", true)
	m.RecordAccessTokenCache("google", true)
	m.RecordProviderAPICall("google", "list", true, time.Second)
	m.RecordAggregation(2, 1)
	m.SetLinkedAccountsCount("google", 1)
	m.RecordDatabaseQueryError("count_linked_accounts")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := GetMetrics()

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(m))
	r.GET("/api/files/:provider", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/files/:provider", "200"),
	)

	for _, p := range []string{"/api/files/google", "/api/files/microsoft"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, p, nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	after := testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/files/:provider", "200"),
	)
	assert.InDelta(t, 2, after-before, 0.001, "requests should be grouped by route pattern")
}

func TestHTTPMetricsMiddleware_Noop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(NewNoopMetrics()))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		fullPath string
		expected string
	}{
		{"empty path", "", "unknown"},
		{"root path", "/", "/"},
		{"health check", "/health", "/health"},
		{"link start", "/api/link/:provider/start", "/api/link/:provider/start"},
		{"parameterized", "/api/files/:provider/:fileId", "/api/files/:provider/:fileId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizePath(tt.fullPath)
			assert.Equal(t, tt.expected, result)
		})
	}
}
