package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/cache"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"

	"golang.org/x/sync/singleflight"
)

// AccessTokenSkew is subtracted from a token's expiry before it is served
// from cache, so callers never receive a token about to expire mid-request.
const AccessTokenSkew = 60 * time.Second

var _ core.AccessTokenSource = (*AccessTokenService)(nil)

// AccessTokenService resolves a usable provider access token for a linked
// account, refreshing and re-persisting the token set on a cache miss.
type AccessTokenService struct {
	tokens  *TokenStore
	clients oauth.Registry
	cache   core.Cache[models.CachedAccessToken]
	metrics core.Recorder
	logger  *slog.Logger

	group singleflight.Group
	now   func() time.Time
}

func NewAccessTokenService(
	tokens *TokenStore,
	clients oauth.Registry,
	tokenCache core.Cache[models.CachedAccessToken],
	m core.Recorder,
	logger *slog.Logger,
) *AccessTokenService {
	return &AccessTokenService{
		tokens:  tokens,
		clients: clients,
		cache:   tokenCache,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

func accessTokenKey(userID string, provider models.Provider) string {
	return userID + ":" + provider.Slug()
}

// AccessToken returns a bearer token for (userID, provider). Concurrent
// misses for the same account share one refresh.
func (s *AccessTokenService) AccessToken(
	ctx context.Context,
	userID string,
	provider models.Provider,
) (string, error) {
	key := accessTokenKey(userID, provider)

	cached, err := s.cache.Get(ctx, key)
	if err == nil && s.now().Add(AccessTokenSkew).Before(cached.ExpiresAt) {
		s.metrics.RecordAccessTokenCache(provider.Slug(), true)
		return cached.AccessToken, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("access token cache read failed", "provider", provider, "error", err)
	}
	s.metrics.RecordAccessTokenCache(provider.Slug(), false)

	// The shared refresh ignores caller cancellation; each waiter still
	// returns on its own ctx.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx), key, userID, provider)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *AccessTokenService) refresh(
	ctx context.Context,
	key, userID string,
	provider models.Provider,
) (string, error) {
	account, err := s.tokens.Get(ctx, userID, provider)
	if err != nil {
		return "", fmt.Errorf("load provider account: %w", err)
	}
	if account == nil {
		return "", ErrNotLinked
	}

	client, err := s.clients.Get(provider)
	if err != nil {
		return "", err
	}

	refreshToken, err := s.tokens.Decrypt(account.EncryptedRefreshToken)
	if err != nil {
		s.logger.Error("refresh token decryption failed",
			"user_id", userID,
			"provider", provider,
			"error", err,
		)
		return "", err
	}

	ts, err := client.Refresh(ctx, refreshToken)
	s.metrics.RecordTokenRefresh(provider.Slug(), err == nil)
	if err != nil {
		s.logger.Warn("token refresh failed", "user_id", userID, "provider", provider, "error", err)
		return "", fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
	}

	// A row deleted by Disconnect while the provider answered stays deleted.
	// Other persist failures are logged only; the access token is valid regardless.
	if _, err := s.tokens.UpdateTokenSet(ctx, account, ts); err != nil {
		if errors.Is(err, ErrNotLinked) {
			s.logger.Info("account unlinked during token refresh",
				"user_id", userID,
				"provider", provider,
			)
			return "", ErrNotLinked
		}
		s.logger.Error("persist refreshed token set failed",
			"user_id", userID,
			"provider", provider,
			"error", err,
		)
	}

	if ttl := ts.ExpiresAt.Sub(s.now()) - AccessTokenSkew; ttl > 0 {
		entry := models.CachedAccessToken{AccessToken: ts.AccessToken, ExpiresAt: ts.ExpiresAt}
		if err := s.cache.Set(ctx, key, entry, ttl); err != nil {
			s.logger.Warn("access token cache write failed", "provider", provider, "error", err)
		}
	}

	return ts.AccessToken, nil
}

// Invalidate drops the cached access token for (userID, provider).
func (s *AccessTokenService) Invalidate(ctx context.Context, userID string, provider models.Provider) {
	key := accessTokenKey(userID, provider)
	s.group.Forget(key)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("access token cache delete failed", "provider", provider, "error", err)
	}
}
