package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/cache"
	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/metrics"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config, logger *slog.Logger) core.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		logger.Info("Prometheus metrics initialized")
	} else {
		logger.Info("metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// initializeMetricsCache initializes the cache in front of gauge queries
func initializeMetricsCache(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (core.Cache[int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil, nil
	}

	c, err := newCache[int64](
		ctx,
		cfg,
		cfg.MetricsCacheType,
		cfg.RedisKeyPrefix+"metrics:",
		cfg.MetricsCacheClientTTL,
		cfg.MetricsCacheSizePerConn,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize %s metrics cache: %w", cfg.MetricsCacheType, err)
	}
	logCacheType(logger, "metrics", cfg, cfg.MetricsCacheType)
	return c, c.Close, nil
}

// initializeAccessTokenCache initializes the provider access token cache
// (always enabled, defaults to memory)
func initializeAccessTokenCache(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (core.Cache[models.CachedAccessToken], func() error, error) {
	c, err := newCache[models.CachedAccessToken](
		ctx,
		cfg,
		cfg.AccessTokenCache,
		cfg.RedisKeyPrefix+"access_token:",
		cfg.AccessTokenCacheClientTTL,
		cfg.AccessTokenCacheSizePerConn,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"failed to initialize %s access token cache: %w",
			cfg.AccessTokenCache,
			err,
		)
	}
	logCacheType(logger, "access token", cfg, cfg.AccessTokenCache)
	return c, c.Close, nil
}

// newCache builds a memory, redis or redis-aside cache. The three type names
// are shared by every cache setting.
func newCache[T any](
	ctx context.Context,
	cfg *config.Config,
	cacheType, keyPrefix string,
	clientTTL time.Duration,
	sizePerConnMB int,
) (core.Cache[T], error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	switch cacheType {
	case config.AccessTokenCacheRedisAside:
		c, err := cache.NewRueidisAsideCache[T](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			keyPrefix,
			clientTTL,
			sizePerConnMB,
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.AccessTokenCacheRedis:
		c, err := cache.NewRueidisCache[T](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			keyPrefix,
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	default: // memory
		return cache.NewMemoryCache[T](), nil
	}
}

func logCacheType(logger *slog.Logger, name string, cfg *config.Config, cacheType string) {
	switch cacheType {
	case config.AccessTokenCacheRedisAside, config.AccessTokenCacheRedis:
		logger.Info(name+" cache initialized",
			"type", cacheType,
			"addr", cfg.RedisAddr,
			"db", cfg.RedisDB,
		)
	default:
		logger.Info(name + " cache initialized: memory (single instance only)")
	}
}
