package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"golang.org/x/oauth2"
)

// Config contains configuration for a provider OAuth client
type Config struct {
	ClientID     string
	ClientSecret string
	Scopes       []string // used when a caller requests no scopes

	// Endpoint and RevokeURL override the provider defaults (tests, sovereign clouds)
	Endpoint  oauth2.Endpoint
	RevokeURL string

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// client implements the parts of core.OAuthClient shared by every provider.
// Providers differ only in endpoints, extra authorize parameters and revoke.
type client struct {
	provider   models.Provider
	config     oauth2.Config
	authParams []oauth2.AuthCodeOption
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func newClient(
	provider models.Provider,
	cfg Config,
	endpoint oauth2.Endpoint,
	authParams ...oauth2.AuthCodeOption,
) client {
	if cfg.Endpoint.AuthURL != "" {
		endpoint = cfg.Endpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return client{
		provider: provider,
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		authParams: authParams,
		httpClient: httpClient,
		logger:     logger.With("provider", provider.String()),
		now:        time.Now,
	}
}

func (c *client) Provider() models.Provider {
	return c.provider
}

func (c *client) withRedirect(redirectURI string, scopes []string) *oauth2.Config {
	cfg := c.config
	cfg.RedirectURL = redirectURI
	if len(scopes) > 0 {
		cfg.Scopes = scopes
	}
	return &cfg
}

// buildAuthorizeURL returns the consent URL with the S256 challenge.
func (c *client) buildAuthorizeURL(state, codeChallenge, redirectURI string, scopes []string) string {
	opts := make([]oauth2.AuthCodeOption, 0, len(c.authParams)+2)
	opts = append(opts,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
	opts = append(opts, c.authParams...)

	return c.withRedirect(redirectURI, scopes).AuthCodeURL(state, opts...)
}

func (c *client) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// Exchange redeems code with the PKCE verifier. The redirect URI and scopes
// must match the ones used to build the authorize URL.
func (c *client) Exchange(
	ctx context.Context,
	code, codeVerifier, redirectURI string,
	scopes []string,
) (*core.TokenSet, error) {
	cfg := c.withRedirect(redirectURI, scopes)

	tok, err := cfg.Exchange(c.httpContext(ctx), code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		c.logger.Warn("code exchange failed", "error", describe(err))
		return nil, fmt.Errorf("%w: %s", ErrExchangeFailed, describe(err))
	}
	if tok.RefreshToken == "" {
		c.logger.Warn("code exchange returned no refresh token")
		return nil, ErrMissingRefreshToken
	}

	return c.tokenSet(tok, "", cfg.Scopes), nil
}

// Refresh redeems refreshToken. A provider that does not rotate refresh
// tokens yields a set carrying the input token.
func (c *client) Refresh(ctx context.Context, refreshToken string) (*core.TokenSet, error) {
	src := c.config.TokenSource(c.httpContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	tok, err := src.Token()
	if err != nil {
		c.logger.Warn("token refresh failed", "error", describe(err))
		return nil, fmt.Errorf("%w: %s", ErrRefreshFailed, describe(err))
	}

	return c.tokenSet(tok, refreshToken, nil), nil
}

// tokenSet converts an oauth2 token. fallbackRefresh is kept when the
// response carries none; requested scopes are used when the response omits scope.
func (c *client) tokenSet(tok *oauth2.Token, fallbackRefresh string, requested []string) *core.TokenSet {
	now := c.now()

	expiresAt := now
	if tok.Expiry.After(now) {
		expiresAt = tok.Expiry
	}

	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = fallbackRefresh
	}

	scopes := requested
	if raw, ok := tok.Extra("scope").(string); ok && strings.TrimSpace(raw) != "" {
		scopes = strings.Fields(raw)
	}

	return &core.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.UTC(),
		Scopes:       scopes,
	}
}

// describe returns a loggable summary without echoing the response body.
func describe(err error) string {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		if re.ErrorCode != "" {
			return fmt.Sprintf("%s (status %d)", re.ErrorCode, re.Response.StatusCode)
		}
		return fmt.Sprintf("status %d", re.Response.StatusCode)
	}
	return err.Error()
}
