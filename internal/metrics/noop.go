package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

// Linking - noop implementations
func (n *NoopMetrics) RecordLinkStart(provider string, success bool) {}
func (n *NoopMetrics) RecordLinkCallback(provider, result string)    {}
func (n *NoopMetrics) RecordDisconnect(provider string)              {}
func (n *NoopMetrics) RecordStateTake(found bool)                    {}

// Provider calls - noop implementations
func (n *NoopMetrics) RecordTokenRefresh(provider string, success bool) {}
func (n *NoopMetrics) RecordAccessTokenCache(provider string, hit bool) {}
func (n *NoopMetrics) RecordAggregation(providers, failures int)        {}

func (n *NoopMetrics) RecordProviderAPICall(
	provider, operation string,
	success bool,
	duration time.Duration,
) {
}

// Gauges and database - noop implementations
func (n *NoopMetrics) SetLinkedAccountsCount(provider string, count int) {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)         {}
