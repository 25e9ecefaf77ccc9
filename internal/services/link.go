package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"
	"github.com/Reblayzer/BachelorCode-sub000/internal/util"
)

// Callback outcomes used as metric labels
const (
	callbackSuccess        = "success"
	callbackStateInvalid   = "state_invalid"
	callbackMismatch       = "mismatch"
	callbackExchangeFailed = "exchange_failed"
	callbackDenied         = "denied"
	callbackError          = "error"
)

// CallbackRequest carries the query of a provider redirect.
type CallbackRequest struct {
	Provider models.Provider
	State    string
	Code     string
	// Principal is the authenticated user of the callback request, if any.
	Principal string
}

// LinkResult describes a completed link.
type LinkResult struct {
	UserID   string
	Provider models.Provider
	Account  *models.ProviderAccount
}

// LinkService drives the authorization code + PKCE flow that links a
// provider account to a local user.
type LinkService struct {
	states      core.StateStore
	tokens      *TokenStore
	clients     oauth.Registry
	accessToken *AccessTokenService
	stateTTL    time.Duration
	metrics     core.Recorder
	logger      *slog.Logger
	now         func() time.Time
}

func NewLinkService(
	states core.StateStore,
	tokens *TokenStore,
	clients oauth.Registry,
	accessToken *AccessTokenService,
	stateTTL time.Duration,
	m core.Recorder,
	logger *slog.Logger,
) *LinkService {
	if stateTTL <= 0 {
		stateTTL = linkstate.DefaultTTL
	}
	return &LinkService{
		states:      states,
		tokens:      tokens,
		clients:     clients,
		accessToken: accessToken,
		stateTTL:    stateTTL,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Start records a pending link attempt and returns the provider authorize URL.
func (s *LinkService) Start(
	ctx context.Context,
	userID string,
	provider models.Provider,
	redirectURI string,
	scopes []string,
) (string, error) {
	authURL, err := s.start(ctx, userID, provider, redirectURI, scopes)
	s.metrics.RecordLinkStart(provider.Slug(), err == nil)
	return authURL, err
}

func (s *LinkService) start(
	ctx context.Context,
	userID string,
	provider models.Provider,
	redirectURI string,
	scopes []string,
) (string, error) {
	client, err := s.clients.Get(provider)
	if err != nil {
		return "", err
	}

	state, err := util.NewState(util.StateBytes)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	verifier, err := util.NewCodeVerifier(util.VerifierBytes)
	if err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}

	now := s.now().UTC()
	entry := models.LinkState{
		State:        state,
		UserID:       userID,
		CodeVerifier: verifier,
		Provider:     provider,
		RedirectURI:  redirectURI,
		Scopes:       strings.Join(scopes, " "),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.stateTTL),
	}
	if err := s.states.Save(ctx, state, entry, s.stateTTL); err != nil {
		return "", fmt.Errorf("save link state: %w", err)
	}

	s.logger.Info("provider link started", "user_id", userID, "provider", provider)
	return client.BuildAuthorizeURL(state, util.CodeChallenge(verifier), redirectURI, scopes), nil
}

// take consumes the state. Every outcome other than a found entry ends the attempt.
func (s *LinkService) take(ctx context.Context, state string) (*models.LinkState, error) {
	if state == "" {
		s.metrics.RecordStateTake(false)
		return nil, ErrStateExpiredOrReused
	}
	entry, err := s.states.Take(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("take link state: %w", err)
	}
	s.metrics.RecordStateTake(entry != nil)
	if entry == nil {
		return nil, ErrStateExpiredOrReused
	}
	return entry, nil
}

// Callback completes a link: it consumes the state, exchanges the code with
// the stored verifier and persists the encrypted refresh token.
// The authorization code is single-use, so a failed exchange is never retried.
func (s *LinkService) Callback(ctx context.Context, req CallbackRequest) (*LinkResult, error) {
	result, outcome, err := s.callback(ctx, req)
	s.metrics.RecordLinkCallback(req.Provider.Slug(), outcome)
	return result, err
}

func (s *LinkService) callback(ctx context.Context, req CallbackRequest) (*LinkResult, string, error) {
	entry, err := s.take(ctx, req.State)
	if err != nil {
		if errors.Is(err, ErrStateExpiredOrReused) {
			s.logger.Warn("link callback with unknown state", "provider", req.Provider)
			return nil, callbackStateInvalid, err
		}
		return nil, callbackError, err
	}

	if entry.Provider != req.Provider {
		s.logger.Warn("link callback provider mismatch",
			"expected", entry.Provider,
			"got", req.Provider,
		)
		return nil, callbackMismatch, ErrProviderMismatch
	}
	if req.Principal != "" && req.Principal != entry.UserID {
		s.logger.Warn("link callback user mismatch", "provider", req.Provider)
		return nil, callbackMismatch, ErrUserMismatch
	}
	if req.Code == "" {
		return nil, callbackError, ErrMissingCode
	}

	client, err := s.clients.Get(entry.Provider)
	if err != nil {
		return nil, callbackError, err
	}

	ts, err := client.Exchange(
		ctx,
		req.Code,
		entry.CodeVerifier,
		entry.RedirectURI,
		entry.RequestedScopes(),
	)
	if err != nil {
		s.logger.Warn("provider code exchange failed",
			"user_id", entry.UserID,
			"provider", entry.Provider,
			"error", err,
		)
		return nil, callbackExchangeFailed, fmt.Errorf("%w: %w", ErrProviderExchangeFailed, err)
	}

	account, err := s.tokens.SaveTokenSet(ctx, entry.UserID, entry.Provider, ts)
	if err != nil {
		return nil, callbackError, fmt.Errorf("save provider account: %w", err)
	}
	s.accessToken.Invalidate(ctx, entry.UserID, entry.Provider)

	s.logger.Info("provider linked", "user_id", entry.UserID, "provider", entry.Provider)
	return &LinkResult{
		UserID:   entry.UserID,
		Provider: entry.Provider,
		Account:  account,
	}, callbackSuccess, nil
}

// CallbackError handles a provider redirect that carries error= instead of a
// code. The state is consumed so it cannot be replayed.
func (s *LinkService) CallbackError(
	ctx context.Context,
	provider models.Provider,
	state, providerError string,
) error {
	s.metrics.RecordLinkCallback(provider.Slug(), callbackDenied)

	entry, err := s.take(ctx, state)
	if err != nil && !errors.Is(err, ErrStateExpiredOrReused) {
		s.logger.Error("take link state failed", "provider", provider, "error", err)
	}
	userID := ""
	if entry != nil {
		userID = entry.UserID
	}
	s.logger.Info("provider denied link",
		"user_id", userID,
		"provider", provider,
		"provider_error", providerError,
	)
	return fmt.Errorf("%w: %s", ErrProviderDenied, providerError)
}

// Disconnect unlinks provider from userID. The refresh token is revoked on a
// best-effort basis. Disconnecting an unlinked provider succeeds.
func (s *LinkService) Disconnect(ctx context.Context, userID string, provider models.Provider) error {
	account, err := s.tokens.Get(ctx, userID, provider)
	if err != nil {
		return fmt.Errorf("load provider account: %w", err)
	}
	if account == nil {
		s.accessToken.Invalidate(ctx, userID, provider)
		return nil
	}

	if client, err := s.clients.Get(provider); err == nil {
		refreshToken, err := s.tokens.Decrypt(account.EncryptedRefreshToken)
		if err != nil {
			s.logger.Warn("skip revoke: refresh token cannot be decrypted",
				"user_id", userID,
				"provider", provider,
				"error", err,
			)
		} else {
			client.Revoke(ctx, refreshToken)
		}
	}

	if err := s.tokens.Delete(ctx, userID, provider); err != nil {
		return fmt.Errorf("delete provider account: %w", err)
	}
	s.accessToken.Invalidate(ctx, userID, provider)
	s.metrics.RecordDisconnect(provider.Slug())

	s.logger.Info("provider disconnected", "user_id", userID, "provider", provider)
	return nil
}

// ListLinked returns the user's linked accounts.
func (s *LinkService) ListLinked(ctx context.Context, userID string) ([]models.ProviderAccount, error) {
	return s.tokens.GetAllByUser(ctx, userID)
}
