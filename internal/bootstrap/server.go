package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/metrics"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second, // aggregation waits on every provider
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server, logger *slog.Logger) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("failed to start server", "error", err)
				os.Exit(1)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(
	m *graceful.Manager,
	srv *http.Server,
	cfg *config.Config,
	logger *slog.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
			return err
		}

		logger.Info("server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		logger.Info("closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Error("error closing Redis client", "error", err)
			return err
		}
		logger.Info("Redis connection closed")
		return nil
	})
}

// addDatabaseCloseJob closes the database pool on shutdown
func addDatabaseCloseJob(m *graceful.Manager, db *store.Store, logger *slog.Logger) {
	m.AddShutdownJob(func() error {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
			return err
		}
		logger.Info("database closed")
		return nil
	})
}

// addCacheCloseJob adds cache close on shutdown
func addCacheCloseJob(m *graceful.Manager, name string, closer func() error, logger *slog.Logger) {
	if closer == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := closer(); err != nil {
			logger.Error("error closing cache", "cache", name, "error", err)
		} else {
			logger.Info("cache closed", "cache", name)
		}
		return nil
	})
}

// addStateCleanupJob periodically drops expired link states from backends
// that do not expire them on their own
func addStateCleanupJob(
	m *graceful.Manager,
	cfg *config.Config,
	cleaner linkstate.Cleaner,
	logger *slog.Logger,
) {
	if cleaner == nil || cfg.StateCleanupInterval <= 0 {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.StateCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cleanupLinkStates(ctx, cleaner, logger)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

func cleanupLinkStates(ctx context.Context, cleaner linkstate.Cleaner, logger *slog.Logger) {
	removed, err := cleaner.Cleanup(ctx)
	switch {
	case err != nil:
		logger.Warn("failed to clean up expired link states", "error", err)
	case removed > 0:
		logger.Debug("cleaned up expired link states", "removed", removed)
	}
}

// pruner is implemented by in-process caches
type pruner interface {
	Prune() int
}

// addAccessTokenCachePruneJob drops expired entries from an in-memory access
// token cache. Redis caches expire keys themselves.
func addAccessTokenCachePruneJob(
	m *graceful.Manager,
	cfg *config.Config,
	tokenCache core.Cache[models.CachedAccessToken],
	logger *slog.Logger,
) {
	p, ok := tokenCache.(pruner)
	if !ok || cfg.StateCleanupInterval <= 0 {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.StateCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := p.Prune(); removed > 0 {
					logger.Debug("pruned expired access tokens", "removed", removed)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db core.MetricsStore,
	providers []models.Provider,
	prometheusMetrics core.Recorder,
	metricsCache core.Cache[int64],
	logger *slog.Logger,
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || metricsCache == nil {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		cacheWrapper := metrics.NewCacheWrapper(db, metricsCache)
		errLogger := newErrorLogger(logger)

		// Update immediately on startup
		updateGaugeMetricsWithCache(
			ctx,
			cacheWrapper,
			providers,
			prometheusMetrics,
			cfg.MetricsGaugeUpdateInterval,
			errLogger,
		)

		for {
			select {
			case <-ticker.C:
				updateGaugeMetricsWithCache(
					ctx,
					cacheWrapper,
					providers,
					prometheusMetrics,
					cfg.MetricsGaugeUpdateInterval,
					errLogger,
				)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// errorLogger handles rate-limited error logging
type errorLogger struct {
	mu              sync.Mutex
	logger          *slog.Logger
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
	now             func() time.Time
}

// newErrorLogger creates a new error logger with rate limiting
func newErrorLogger(logger *slog.Logger) *errorLogger {
	return &errorLogger{
		logger:          logger,
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: 5 * time.Minute, // Log at most once per 5 minutes per operation
		now:             time.Now,
	}
}

// logIfNeeded logs an error only if rate limit allows. It reports whether it logged.
func (e *errorLogger) logIfNeeded(operation string, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	lastTime, exists := e.lastErrorTimes[operation]
	if exists && now.Sub(lastTime) < e.rateLimitWindow {
		return false
	}

	e.logger.Warn("database query failed",
		"operation", operation,
		"error", err,
		"suppressed_for", e.rateLimitWindow.String(),
	)
	e.lastErrorTimes[operation] = now
	return true
}

// updateGaugeMetricsWithCache updates the linked-accounts gauge per provider
// through the cache so that several instances share one count query per TTL.
func updateGaugeMetricsWithCache(
	ctx context.Context,
	cacheWrapper *metrics.CacheWrapper,
	providers []models.Provider,
	m core.Recorder,
	cacheTTL time.Duration,
	errLogger *errorLogger,
) {
	for _, p := range providers {
		count, err := cacheWrapper.GetLinkedAccountsCount(ctx, p.String(), cacheTTL)
		if err != nil {
			operation := "count_accounts_" + p.Slug()
			m.RecordDatabaseQueryError(operation)
			errLogger.logIfNeeded(operation, err)
			continue
		}
		m.SetLinkedAccountsCount(p.Slug(), int(count))
	}
}
