package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/cache"
	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/metrics"
	"github.com/Reblayzer/BachelorCode-sub000/internal/mocks"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testConfig() *config.Config {
	return &config.Config{
		ServerAddr:            ":0",
		BaseURL:               "https://linker.example.com",
		Environment:           "development",
		DatabaseDriver:        "sqlite",
		DatabaseDSN:           ":memory:",
		StateStore:            config.StateStoreMemory,
		StateTTL:              10 * time.Minute,
		StateCleanupInterval:  time.Minute,
		AccessTokenCache:      config.AccessTokenCacheMemory,
		TokenEncryptionKey:    "0123456789abcdef0123456789abcdef",
		GoogleClientID:        "google-id",
		GoogleClientSecret:    "google-secret",
		MicrosoftClientID:     "ms-id",
		MicrosoftClientSecret: "ms-secret",
		MicrosoftTenant:       "common",
		ProviderTimeout:       5 * time.Second,
		ProviderHTTPTimeout:   5 * time.Second,
		ProviderMaxRetries:    1,
		AuthMode:              config.AuthModeHeader,
		AuthHeader:            "X-User-ID",
		DBInitTimeout:         5 * time.Second,
		CacheInitTimeout:      time.Second,
		ServerShutdownTimeout: time.Second,
	}
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fakeHealth struct{ err error }

func (f fakeHealth) Health(context.Context) error { return f.err }

func TestValidateAllConfiguration(t *testing.T) {
	assert.NoError(t, validateAllConfiguration(testConfig()))

	cfg := testConfig()
	cfg.StateStore = "etcd"
	err := validateAllConfiguration(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "STATE_STORE")
}

func TestInitializeMetrics(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		cfg := &config.Config{MetricsEnabled: enabled}
		m := initializeMetrics(cfg, discardLogger())
		require.NotNil(t, m)
	}
}

func TestInitializeMetricsCacheDisabled(t *testing.T) {
	ctx := context.Background()

	// Metrics disabled - no cache
	c, closer, err := initializeMetricsCache(
		ctx,
		&config.Config{MetricsEnabled: false, MetricsGaugeUpdateEnabled: true},
		discardLogger(),
	)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, closer)

	// Gauge updates disabled - no cache
	c, closer, err = initializeMetricsCache(
		ctx,
		&config.Config{MetricsEnabled: true, MetricsGaugeUpdateEnabled: false},
		discardLogger(),
	)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, closer)
}

func TestInitializeMetricsCacheMemory(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsGaugeUpdateEnabled = true
	cfg.MetricsCacheType = config.MetricsCacheTypeMemory

	c, closer, err := initializeMetricsCache(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.IsType(t, &cache.MemoryCache[int64]{}, c)
	assert.NoError(t, closer())
}

func TestInitializeAccessTokenCacheMemory(t *testing.T) {
	c, closer, err := initializeAccessTokenCache(context.Background(), testConfig(), discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache[models.CachedAccessToken]{}, c)
	assert.NoError(t, closer())
}

func TestInitializeAccessTokenCacheRedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenCache = config.AccessTokenCacheRedis
	cfg.RedisAddr = "127.0.0.1:1"
	cfg.CacheInitTimeout = 200 * time.Millisecond

	c, closer, err := initializeAccessTokenCache(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis access token cache")
	assert.Nil(t, c)
	assert.Nil(t, closer)
}

func TestInitializeStateRedisClientSkipped(t *testing.T) {
	client, err := initializeStateRedisClient(context.Background(), testConfig(), discardLogger())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestInitializeStateStore(t *testing.T) {
	db := setupTestStore(t)

	cfg := testConfig()
	s, cleaner := initializeStateStore(cfg, db, nil, discardLogger())
	assert.IsType(t, &linkstate.Memory{}, s)
	assert.NotNil(t, cleaner)

	cfg.StateStore = config.StateStoreDatabase
	s, cleaner = initializeStateStore(cfg, db, nil, discardLogger())
	assert.IsType(t, &linkstate.Database{}, s)
	assert.NotNil(t, cleaner)

	cfg.StateStore = config.StateStoreRedis
	s, cleaner = initializeStateStore(cfg, db, nil, discardLogger())
	assert.IsType(t, &linkstate.Redis{}, s)
	assert.Nil(t, cleaner)
}

func TestInitializeOAuthClients(t *testing.T) {
	cfg := testConfig()
	registry := initializeOAuthClients(cfg, http.DefaultClient, discardLogger())
	assert.Equal(
		t,
		[]models.Provider{models.ProviderGoogle, models.ProviderMicrosoft},
		registry.Providers(),
	)

	// Half-configured providers are skipped
	cfg.MicrosoftClientSecret = ""
	registry = initializeOAuthClients(cfg, http.DefaultClient, discardLogger())
	assert.Equal(t, []models.Provider{models.ProviderGoogle}, registry.Providers())
}

func TestInitializeServices(t *testing.T) {
	cfg := testConfig()
	db := setupTestStore(t)
	registry := initializeOAuthClients(cfg, http.DefaultClient, discardLogger())

	set, err := initializeServices(
		cfg,
		db,
		linkstate.NewMemory(),
		cache.NewMemoryCache[models.CachedAccessToken](),
		registry,
		http.DefaultClient,
		metrics.NewNoopMetrics(),
		discardLogger(),
	)
	require.NoError(t, err)
	assert.NotNil(t, set.links)
	assert.NotNil(t, set.files)
	assert.Len(t, set.fileProviders, 2)

	_, err = set.fileProviders.Get(models.ProviderMicrosoft)
	assert.NoError(t, err)
}

func TestInitializeServicesRejectsShortKey(t *testing.T) {
	cfg := testConfig()
	cfg.TokenEncryptionKey = "short"

	_, err := initializeServices(
		cfg,
		setupTestStore(t),
		linkstate.NewMemory(),
		cache.NewMemoryCache[models.CachedAccessToken](),
		nil,
		http.DefaultClient,
		metrics.NewNoopMetrics(),
		discardLogger(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token cipher")
}

func newTestRouter(t *testing.T, cfg *config.Config, health HealthChecker) *gin.Engine {
	t.Helper()
	registry := initializeOAuthClients(cfg, http.DefaultClient, discardLogger())
	set, err := initializeServices(
		cfg,
		setupTestStore(t),
		linkstate.NewMemory(),
		cache.NewMemoryCache[models.CachedAccessToken](),
		registry,
		http.DefaultClient,
		metrics.NewNoopMetrics(),
		discardLogger(),
	)
	require.NoError(t, err)

	h := initializeHandlers(cfg, set, discardLogger())
	return setupRouter(cfg, health, h, metrics.NewNoopMetrics(), discardLogger())
}

func serve(r http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t, testConfig(), fakeHealth{})
	w := serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, w.Body.String())

	r = newTestRouter(t, testConfig(), fakeHealth{err: errors.New("down")})
	w = serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"disconnected"}`, w.Body.String())
}

func TestRouterRequiresUser(t *testing.T) {
	r := newTestRouter(t, testConfig(), fakeHealth{})

	w := serve(r, http.MethodGet, "/api/providers", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/providers", map[string]string{"X-User-ID": "user-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouterStartLink(t *testing.T) {
	r := newTestRouter(t, testConfig(), fakeHealth{})

	w := serve(r, http.MethodPost, "/api/providers/google/link", map[string]string{"X-User-ID": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accounts.google.com")
	assert.Contains(
		t,
		w.Body.String(),
		"redirect_uri=https%3A%2F%2Flinker.example.com%2Fapi%2Fproviders%2Fgoogle%2Fcallback",
	)
}

func TestRouterCallbackUnknownStateIsAnonymous(t *testing.T) {
	r := newTestRouter(t, testConfig(), fakeHealth{})

	w := serve(r, http.MethodGet, "/api/providers/google/callback?state=nope&code=abc", nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	r := newTestRouter(t, cfg, fakeHealth{})
	w := serve(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cfg = testConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsToken = "secret"
	r = newTestRouter(t, cfg, fakeHealth{})

	w = serve(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/metrics", map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterSessionMode(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = config.AuthModeSession
	cfg.SessionSecret = "session-secret"
	r := newTestRouter(t, cfg, fakeHealth{})

	// No session cookie means no principal
	w := serve(r, http.MethodGet, "/api/files", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The header is ignored in session mode
	w = serve(r, http.MethodGet, "/api/files", map[string]string{"X-User-ID": "user-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestErrorLoggerRateLimit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := newErrorLogger(logger)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	assert.True(t, e.logIfNeeded("count_accounts_google", errors.New("boom")))
	assert.False(t, e.logIfNeeded("count_accounts_google", errors.New("boom")))
	assert.True(t, e.logIfNeeded("count_accounts_microsoft", errors.New("boom")))

	now = now.Add(5 * time.Minute)
	assert.True(t, e.logIfNeeded("count_accounts_google", errors.New("boom")))
	assert.Contains(t, buf.String(), "database query failed")
}

func TestUpdateGaugeMetricsWithCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockMetricsStore(ctrl)
	rec := mocks.NewMockRecorder(ctrl)

	ms.EXPECT().CountAccountsByProvider("Google").Return(int64(3), nil)
	ms.EXPECT().CountAccountsByProvider("Microsoft").Return(int64(0), errors.New("db down"))
	rec.EXPECT().SetLinkedAccountsCount("google", 3)
	rec.EXPECT().RecordDatabaseQueryError("count_accounts_microsoft")

	wrapper := metrics.NewCacheWrapper(ms, cache.NewMemoryCache[int64]())
	updateGaugeMetricsWithCache(
		context.Background(),
		wrapper,
		[]models.Provider{models.ProviderGoogle, models.ProviderMicrosoft},
		rec,
		time.Minute,
		newErrorLogger(discardLogger()),
	)

	// Cached count is served without another query
	rec.EXPECT().SetLinkedAccountsCount("google", 3)
	updateGaugeMetricsWithCache(
		context.Background(),
		wrapper,
		[]models.Provider{models.ProviderGoogle},
		rec,
		time.Minute,
		newErrorLogger(discardLogger()),
	)
}

func TestCleanupLinkStates(t *testing.T) {
	states := linkstate.NewMemory()
	ctx := context.Background()
	require.NoError(t, states.Save(ctx, "expired", models.LinkState{
		State:     "expired",
		UserID:    "user-1",
		Provider:  models.ProviderGoogle,
		ExpiresAt: time.Now().Add(-time.Minute),
	}, time.Nanosecond))
	time.Sleep(time.Millisecond)

	cleanupLinkStates(ctx, states, discardLogger())
	assert.Equal(t, 0, states.Len())
}

func TestCreateHTTPServer(t *testing.T) {
	cfg := testConfig()
	srv := createHTTPServer(cfg, http.NotFoundHandler())
	assert.Equal(t, cfg.ServerAddr, srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
}
