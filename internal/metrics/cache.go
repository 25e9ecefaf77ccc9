package metrics

import (
	"context"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
)

// CacheWrapper provides a read-through cache for gauge counts so that
// several instances do not all hit the database on every gauge update.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

// NewCacheWrapper creates a new cache wrapper for metrics.
func NewCacheWrapper(store core.MetricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetLinkedAccountsCount retrieves the number of accounts linked to provider.
// Uses cache-aside pattern via GetWithFetch.
func (m *CacheWrapper) GetLinkedAccountsCount(
	ctx context.Context,
	provider string,
	ttl time.Duration,
) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"accounts:"+provider,
		ttl,
		func(ctx context.Context, key string) (int64, error) {
			return m.store.CountAccountsByProvider(provider)
		},
	)
}
