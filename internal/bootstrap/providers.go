package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/files"
)

// initializeFileProviders creates a file provider for every linkable provider.
// tokens supplies bearer tokens, refreshing them when needed.
func initializeFileProviders(
	cfg *config.Config,
	tokens core.AccessTokenSource,
	httpClient *http.Client,
	logger *slog.Logger,
) files.Registry {
	var providers []core.FileProvider

	if cfg.GoogleEnabled() {
		var opts []files.DriveOption
		if cfg.GoogleDriveURL != "" {
			opts = append(opts, files.WithDriveEndpoint(cfg.GoogleDriveURL))
		}
		providers = append(providers, files.NewGoogleDrive(tokens, httpClient, logger, opts...))
	}

	if cfg.MicrosoftEnabled() {
		providers = append(
			providers,
			files.NewOneDrive(tokens, httpClient, cfg.MicrosoftGraphURL, logger),
		)
	}

	return files.NewRegistry(providers...)
}
