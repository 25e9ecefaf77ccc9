package oauth

import (
	"context"
	"slices"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const offlineAccessScope = "offline_access"

// MicrosoftDefaultScopes grants read access to OneDrive files.
var MicrosoftDefaultScopes = []string{
	offlineAccessScope,
	"User.Read",
	"Files.Read",
}

var _ core.OAuthClient = (*Microsoft)(nil)

// Microsoft is the OAuth client for Microsoft identity platform accounts.
type Microsoft struct {
	client
}

// NewMicrosoft creates a client for the given tenant ("common" when empty).
func NewMicrosoft(cfg Config, tenant string) *Microsoft {
	if tenant == "" {
		tenant = "common"
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = MicrosoftDefaultScopes
	}

	return &Microsoft{
		client: newClient(models.ProviderMicrosoft, cfg, microsoft.AzureADEndpoint(tenant),
			oauth2.SetAuthURLParam("response_mode", "query"),
		),
	}
}

// BuildAuthorizeURL always requests offline_access, without which no
// refresh token is issued.
func (m *Microsoft) BuildAuthorizeURL(state, codeChallenge, redirectURI string, scopes []string) string {
	return m.buildAuthorizeURL(state, codeChallenge, redirectURI, m.withOfflineAccess(scopes))
}

// Exchange falls back to the scopes the authorize URL actually carried.
func (m *Microsoft) Exchange(
	ctx context.Context,
	code, codeVerifier, redirectURI string,
	scopes []string,
) (*core.TokenSet, error) {
	return m.client.Exchange(ctx, code, codeVerifier, redirectURI, m.withOfflineAccess(scopes))
}

func (m *Microsoft) withOfflineAccess(scopes []string) []string {
	if len(scopes) == 0 {
		scopes = m.config.Scopes
	}
	if !slices.Contains(scopes, offlineAccessScope) {
		scopes = append(slices.Clone(scopes), offlineAccessScope)
	}
	return scopes
}

// Revoke only logs: the identity platform has no refresh token revocation
// endpoint for a single grant.
func (m *Microsoft) Revoke(_ context.Context, _ string) {
	m.logger.Info("refresh token revocation not supported; removing local link only")
}
