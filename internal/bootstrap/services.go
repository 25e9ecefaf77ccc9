package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/files"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"
	"github.com/Reblayzer/BachelorCode-sub000/internal/services"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"
	"github.com/Reblayzer/BachelorCode-sub000/internal/tokencrypt"
)

// serviceSet holds the business services shared by the handlers
type serviceSet struct {
	tokens        *services.TokenStore
	accessToken   *services.AccessTokenService
	links         *services.LinkService
	files         *services.FileService
	fileProviders files.Registry
}

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	states core.StateStore,
	accessTokenCache core.Cache[models.CachedAccessToken],
	oauthClients oauth.Registry,
	httpClient *http.Client,
	prometheusMetrics core.Recorder,
	logger *slog.Logger,
) (serviceSet, error) {
	cipher, err := tokencrypt.New(cfg.TokenEncryptionKey, cfg.TokenEncryptionPreviousKeys...)
	if err != nil {
		return serviceSet{}, fmt.Errorf("failed to initialize token cipher: %w", err)
	}
	if n := len(cfg.TokenEncryptionPreviousKeys); n > 0 {
		logger.Info("token cipher accepts previous keys for decryption", "previous_keys", n)
	}

	tokens := services.NewTokenStore(db, cipher)
	accessToken := services.NewAccessTokenService(
		tokens,
		oauthClients,
		accessTokenCache,
		prometheusMetrics,
		logger,
	)
	links := services.NewLinkService(
		states,
		tokens,
		oauthClients,
		accessToken,
		cfg.StateTTL,
		prometheusMetrics,
		logger,
	)

	// File providers pull bearer tokens from the access token service.
	fileProviders := initializeFileProviders(cfg, accessToken, httpClient, logger)
	fileService := services.NewFileService(
		tokens,
		fileProviders,
		cfg.ProviderTimeout,
		prometheusMetrics,
		logger,
	)

	return serviceSet{
		tokens:        tokens,
		accessToken:   accessToken,
		links:         links,
		files:         fileService,
		fileProviders: fileProviders,
	}, nil
}
