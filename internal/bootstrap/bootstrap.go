package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/files"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Logger *slog.Logger

	// Core infrastructure
	DB                     *store.Store
	RedisClient            *redis.Client
	MetricsRecorder        core.Recorder
	MetricsCache           core.Cache[int64]
	MetricsCacheCloser     func() error
	AccessTokenCache       core.Cache[models.CachedAccessToken]
	AccessTokenCacheCloser func() error
	StateStore             core.StateStore
	StateCleaner           linkstate.Cleaner
	ProviderHTTPClient     *http.Client

	// Providers
	OAuthClients  oauth.Registry
	FileProviders files.Registry

	// Services
	Services serviceSet

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		return err
	}

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, caches, Redis and the state store
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Database
	app.DB, err = initializeDatabase(ctx, app.Config, app.Logger)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config, app.Logger)
	app.MetricsCache, app.MetricsCacheCloser, err = initializeMetricsCache(
		ctx,
		app.Config,
		app.Logger,
	)
	if err != nil {
		return err
	}

	// Access token cache
	app.AccessTokenCache, app.AccessTokenCacheCloser, err = initializeAccessTokenCache(
		ctx,
		app.Config,
		app.Logger,
	)
	if err != nil {
		return err
	}

	// Redis (for the link state store)
	app.RedisClient, err = initializeStateRedisClient(ctx, app.Config, app.Logger)
	if err != nil {
		return err
	}

	app.StateStore, app.StateCleaner = initializeStateStore(
		app.Config,
		app.DB,
		app.RedisClient,
		app.Logger,
	)

	// Outbound provider HTTP client
	app.ProviderHTTPClient, err = initializeProviderHTTPClient(app.Config)
	return err
}

// initializeBusinessLayer sets up provider clients and services
func (app *Application) initializeBusinessLayer() error {
	app.OAuthClients = initializeOAuthClients(app.Config, app.ProviderHTTPClient, app.Logger)

	var err error
	app.Services, err = initializeServices(
		app.Config,
		app.DB,
		app.StateStore,
		app.AccessTokenCache,
		app.OAuthClients,
		app.ProviderHTTPClient,
		app.MetricsRecorder,
		app.Logger,
	)
	if err != nil {
		return err
	}
	app.FileProviders = app.Services.fileProviders
	return nil
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	app.HandlerSet = initializeHandlers(app.Config, app.Services, app.Logger)

	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.HandlerSet,
		app.MetricsRecorder,
		app.Logger,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server, app.Logger)
	addServerShutdownJob(m, app.Server, app.Config, app.Logger)
	addStateCleanupJob(m, app.Config, app.StateCleaner, app.Logger)
	addAccessTokenCachePruneJob(m, app.Config, app.AccessTokenCache, app.Logger)
	addMetricsGaugeUpdateJob(
		m,
		app.Config,
		app.DB,
		app.OAuthClients.Providers(),
		app.MetricsRecorder,
		app.MetricsCache,
		app.Logger,
	)
	addRedisClientShutdownJob(m, app.RedisClient, app.Logger)
	addCacheCloseJob(m, "access token", app.AccessTokenCacheCloser, app.Logger)
	addCacheCloseJob(m, "metrics", app.MetricsCacheCloser, app.Logger)
	addDatabaseCloseJob(m, app.DB, app.Logger)

	<-m.Done()
}
