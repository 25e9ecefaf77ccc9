package metrics

import (
	"sync"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics interface used across the application.
type Recorder = core.Recorder

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Linking Metrics
	LinkStartsTotal     *prometheus.CounterVec
	LinkCallbacksTotal  *prometheus.CounterVec
	DisconnectsTotal    *prometheus.CounterVec
	LinkStateTakesTotal *prometheus.CounterVec
	LinkedAccounts      *prometheus.GaugeVec

	// Provider Metrics
	TokenRefreshesTotal      *prometheus.CounterVec
	AccessTokenCacheTotal    *prometheus.CounterVec
	ProviderAPICallsTotal    *prometheus.CounterVec
	ProviderAPICallDuration  *prometheus.HistogramVec
	AggregationsTotal        prometheus.Counter
	AggregationProviderFails prometheus.Counter

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		LinkStartsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_link_starts_total",
				Help: "Total number of provider link attempts started",
			},
			[]string{"provider", "result"}, // success, error
		),
		LinkCallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_link_callbacks_total",
				Help: "Total number of provider link callbacks by outcome",
			},
			[]string{"provider", "result"}, // success, state_invalid, exchange_failed, denied, error
		),
		DisconnectsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_disconnects_total",
				Help: "Total number of provider accounts disconnected",
			},
			[]string{"provider"},
		),
		LinkStateTakesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_link_state_takes_total",
				Help: "Total number of link state lookups",
			},
			[]string{"result"}, // found, missing
		),
		LinkedAccounts: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "provider_linked_accounts",
				Help: "Current number of linked provider accounts",
			},
			[]string{"provider"},
		),

		TokenRefreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_token_refreshes_total",
				Help: "Total number of provider access token refreshes",
			},
			[]string{"provider", "result"},
		),
		AccessTokenCacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_access_token_cache_total",
				Help: "Access token cache lookups",
			},
			[]string{"provider", "result"}, // hit, miss
		),
		ProviderAPICallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_api_calls_total",
				Help: "Total number of provider file API calls",
			},
			[]string{"provider", "operation", "result"},
		),
		ProviderAPICallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_api_call_duration_seconds",
				Help:    "Provider file API call duration",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider", "operation"},
		),
		AggregationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "file_aggregations_total",
				Help: "Total number of cross-provider file listings",
			},
		),
		AggregationProviderFails: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "file_aggregation_provider_failures_total",
				Help: "Provider listings that failed inside a cross-provider listing",
			},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"}, // count_linked_accounts
		),
	}

	return m
}

// GetMetrics returns the Prometheus metrics instance, initializing it if needed
func GetMetrics() *Metrics {
	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}
