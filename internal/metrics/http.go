package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// HTTPMetricsMiddleware creates a Gin middleware that records HTTP metrics
func HTTPMetricsMiddleware(m Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		// NoopMetrics or an unknown implementation
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // Use route pattern, not actual path
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath converts the actual request path to route pattern
// Returns the route pattern (e.g., "/api/files/:provider") or "unknown" if no route matched
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

func result(success bool) string {
	if success {
		return resultSuccess
	}
	return resultError
}

// RecordLinkStart records a link attempt being started
func (m *Metrics) RecordLinkStart(provider string, success bool) {
	m.LinkStartsTotal.WithLabelValues(provider, result(success)).Inc()
}

// RecordLinkCallback records the outcome of a provider callback
func (m *Metrics) RecordLinkCallback(provider, result string) {
	m.LinkCallbacksTotal.WithLabelValues(provider, result).Inc()
}

// RecordDisconnect records a provider account being unlinked
func (m *Metrics) RecordDisconnect(provider string) {
	m.DisconnectsTotal.WithLabelValues(provider).Inc()
}

// RecordStateTake records whether a callback state was found
func (m *Metrics) RecordStateTake(found bool) {
	label := "missing"
	if found {
		label = "found"
	}
	m.LinkStateTakesTotal.WithLabelValues(label).Inc()
}

// RecordTokenRefresh records a refresh-token redemption
func (m *Metrics) RecordTokenRefresh(provider string, success bool) {
	m.TokenRefreshesTotal.WithLabelValues(provider, result(success)).Inc()
}

// RecordAccessTokenCache records an access token cache lookup
func (m *Metrics) RecordAccessTokenCache(provider string, hit bool) {
	label := "miss"
	if hit {
		label = "hit"
	}
	m.AccessTokenCacheTotal.WithLabelValues(provider, label).Inc()
}

// RecordProviderAPICall records a file API call and its duration
func (m *Metrics) RecordProviderAPICall(
	provider, operation string,
	success bool,
	duration time.Duration,
) {
	m.ProviderAPICallsTotal.WithLabelValues(provider, operation, result(success)).Inc()
	m.ProviderAPICallDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordAggregation records a cross-provider listing and how many providers failed
func (m *Metrics) RecordAggregation(providers, failures int) {
	m.AggregationsTotal.Inc()
	if failures > 0 {
		m.AggregationProviderFails.Add(float64(failures))
	}
}

// SetLinkedAccountsCount sets the linked accounts gauge for a provider
func (m *Metrics) SetLinkedAccountsCount(provider string, count int) {
	m.LinkedAccounts.WithLabelValues(provider).Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}

// String formats the metrics for logging
func (m *Metrics) String() string {
	return "Metrics{Links: enabled, Providers: enabled, HTTP: enabled}"
}
