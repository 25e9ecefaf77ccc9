package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/cache"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/metrics"
	"github.com/Reblayzer/BachelorCode-sub000/internal/mocks"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"
	"github.com/Reblayzer/BachelorCode-sub000/internal/tokencrypt"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUserID      = "user-1"
	testOtherUserID = "user-2"
	testRedirectURI = "https://app.example.com/api/providers/callback"
	testSecret      = "test-secret-0123456789abcdef"
)

type testEnv struct {
	store     *store.Store
	tokens    *TokenStore
	states    *linkstate.Memory
	cache     *cache.MemoryCache[models.CachedAccessToken]
	google    *mocks.MockOAuthClient
	microsoft *mocks.MockOAuthClient
	access    *AccessTokenService
	links     *LinkService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupTokenStore(t *testing.T, s *store.Store) *TokenStore {
	t.Helper()
	cipher, err := tokencrypt.New(testSecret)
	require.NoError(t, err)
	return NewTokenStore(s, cipher)
}

func newOAuthMock(ctrl *gomock.Controller, provider models.Provider) *mocks.MockOAuthClient {
	m := mocks.NewMockOAuthClient(ctrl)
	m.EXPECT().Provider().Return(provider).AnyTimes()
	return m
}

// newTestEnv wires the link and access-token services over sqlite, the
// in-memory state store and mocked OAuth clients.
func newTestEnv(t *testing.T, stateTTL time.Duration) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	s := setupTestStore(t)
	tokens := setupTokenStore(t, s)
	states := linkstate.NewMemory()
	tokenCache := cache.NewMemoryCache[models.CachedAccessToken]()
	google := newOAuthMock(ctrl, models.ProviderGoogle)
	microsoft := newOAuthMock(ctrl, models.ProviderMicrosoft)
	registry := oauth.NewRegistry(google, microsoft)

	m := metrics.NewNoopMetrics()
	access := NewAccessTokenService(tokens, registry, tokenCache, m, discardLogger())
	links := NewLinkService(states, tokens, registry, access, stateTTL, m, discardLogger())

	return &testEnv{
		store:     s,
		tokens:    tokens,
		states:    states,
		cache:     tokenCache,
		google:    google,
		microsoft: microsoft,
		access:    access,
		links:     links,
	}
}

func tokenSet(access, refresh string, expiresIn time.Duration, scopes ...string) *core.TokenSet {
	return &core.TokenSet{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(expiresIn).UTC(),
		Scopes:       scopes,
	}
}
