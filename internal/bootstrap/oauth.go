package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/Reblayzer/BachelorCode-sub000/internal/client"
	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"
)

// initializeOAuthClients creates a client for every provider with credentials
func initializeOAuthClients(
	cfg *config.Config,
	httpClient *http.Client,
	logger *slog.Logger,
) oauth.Registry {
	var clients []core.OAuthClient

	switch {
	case cfg.GoogleClientID == "" && cfg.GoogleClientSecret == "":
		// Google not configured
	case !cfg.GoogleEnabled():
		logger.Warn("Google linking disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing")
	default:
		clients = append(clients, oauth.NewGoogle(oauth.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Scopes:       cfg.GoogleScopes,
			HTTPClient:   httpClient,
			Logger:       logger,
		}))
		logger.Info("Google OAuth configured", "scopes", cfg.GoogleScopes)
	}

	switch {
	case cfg.MicrosoftClientID == "" && cfg.MicrosoftClientSecret == "":
		// Microsoft not configured
	case !cfg.MicrosoftEnabled():
		logger.Warn("Microsoft linking disabled: MICROSOFT_CLIENT_ID or MICROSOFT_CLIENT_SECRET missing")
	default:
		clients = append(clients, oauth.NewMicrosoft(oauth.Config{
			ClientID:     cfg.MicrosoftClientID,
			ClientSecret: cfg.MicrosoftClientSecret,
			Scopes:       cfg.MicrosoftScopes,
			HTTPClient:   httpClient,
			Logger:       logger,
		}, cfg.MicrosoftTenant))
		logger.Info(
			"Microsoft OAuth configured",
			"tenant", cfg.MicrosoftTenant,
			"scopes", cfg.MicrosoftScopes,
		)
	}

	registry := oauth.NewRegistry(clients...)
	logger.Info("OAuth providers enabled", "providers", registry.Providers())
	return registry
}

// initializeProviderHTTPClient creates the retrying HTTP client shared by
// OAuth clients and file providers
func initializeProviderHTTPClient(cfg *config.Config) (*http.Client, error) {
	return client.NewProviderClient(client.Options{
		Timeout:           cfg.ProviderHTTPTimeout,
		MaxRetries:        cfg.ProviderMaxRetries,
		InitialRetryDelay: cfg.ProviderRetryDelay,
		MaxRetryDelay:     cfg.ProviderMaxRetryDelay,
	})
}
