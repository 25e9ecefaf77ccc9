package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleRevokeURL = "https://oauth2.googleapis.com/revoke"

// GoogleDefaultScopes grants read access to Drive plus basic identity.
var GoogleDefaultScopes = []string{
	"openid",
	"email",
	"https://www.googleapis.com/auth/drive.readonly",
}

var _ core.OAuthClient = (*Google)(nil)

// Google is the OAuth client for Google accounts.
type Google struct {
	client
	revokeURL string
}

// NewGoogle creates a Google client. Authorize URLs request offline access
// with forced consent so that every link yields a refresh token.
func NewGoogle(cfg Config) *Google {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = GoogleDefaultScopes
	}
	revokeURL := cfg.RevokeURL
	if revokeURL == "" {
		revokeURL = googleRevokeURL
	}

	return &Google{
		client: newClient(models.ProviderGoogle, cfg, google.Endpoint,
			oauth2.AccessTypeOffline,
			oauth2.ApprovalForce,
			oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		),
		revokeURL: revokeURL,
	}
}

func (g *Google) BuildAuthorizeURL(state, codeChallenge, redirectURI string, scopes []string) string {
	return g.buildAuthorizeURL(state, codeChallenge, redirectURI, scopes)
}

// Revoke asks Google to invalidate the refresh token. Failures are logged only.
func (g *Google) Revoke(ctx context.Context, refreshToken string) {
	if err := g.revoke(ctx, refreshToken); err != nil {
		g.logger.Warn("token revocation failed", "error", err)
		return
	}
	g.logger.Info("refresh token revoked")
}

func (g *Google) revoke(ctx context.Context, refreshToken string) error {
	form := url.Values{"token": {refreshToken}}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.revokeURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
