package core

import (
	"context"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// TokenSet is the transient result of a code exchange or refresh.
// It is never persisted as-is.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scopes       []string
}

// OAuthClient is the per-provider authorization code + PKCE contract.
type OAuthClient interface {
	Provider() models.Provider

	// BuildAuthorizeURL is pure: the same inputs always yield the same URL.
	BuildAuthorizeURL(state, codeChallenge, redirectURI string, scopes []string) string

	// Exchange redeems an authorization code. scopes are the ones passed to
	// BuildAuthorizeURL and stand in when the response omits scope.
	// A response without a refresh token is an error.
	Exchange(ctx context.Context, code, codeVerifier, redirectURI string, scopes []string) (*TokenSet, error)

	// Refresh obtains a new access token. When the provider does not rotate
	// the refresh token, the returned set carries the one passed in.
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)

	// Revoke is best effort and never fails.
	Revoke(ctx context.Context, refreshToken string)
}
