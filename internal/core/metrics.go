package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Linking
	RecordLinkStart(provider string, success bool)
	RecordLinkCallback(provider, result string)
	RecordDisconnect(provider string)
	RecordStateTake(found bool)

	// Provider calls
	RecordTokenRefresh(provider string, success bool)
	RecordAccessTokenCache(provider string, hit bool)
	RecordProviderAPICall(provider, operation string, success bool, duration time.Duration)
	RecordAggregation(providers, failures int)

	// Gauge Setters (for periodic updates)
	SetLinkedAccountsCount(provider string, count int)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by CacheWrapper.
type MetricsStore interface {
	CountAccountsByProvider(provider string) (int64, error)
}
