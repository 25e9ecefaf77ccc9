package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// TokenStore persists provider accounts and owns the encryption of their
// refresh tokens. Plaintext refresh tokens never reach the repository.
type TokenStore struct {
	repo   core.AccountRepository
	cipher core.Cipher
	now    func() time.Time
}

func NewTokenStore(repo core.AccountRepository, cipher core.Cipher) *TokenStore {
	return &TokenStore{
		repo:   repo,
		cipher: cipher,
		now:    time.Now,
	}
}

// Get returns the account linking userID to provider, or nil when there is none.
func (s *TokenStore) Get(
	ctx context.Context,
	userID string,
	provider models.Provider,
) (*models.ProviderAccount, error) {
	return s.repo.GetProviderAccount(ctx, userID, provider)
}

// GetAllByUser returns every account linked by userID.
func (s *TokenStore) GetAllByUser(ctx context.Context, userID string) ([]models.ProviderAccount, error) {
	return s.repo.ListProviderAccounts(ctx, userID)
}

// Upsert inserts or updates the (user, provider) row.
func (s *TokenStore) Upsert(ctx context.Context, account *models.ProviderAccount) error {
	return s.repo.UpsertProviderAccount(ctx, account)
}

// Delete removes the (user, provider) row. Deleting a missing row is not an error.
func (s *TokenStore) Delete(ctx context.Context, userID string, provider models.Provider) error {
	return s.repo.DeleteProviderAccount(ctx, userID, provider)
}

func (s *TokenStore) Encrypt(plaintext string) (string, error) {
	ciphertext, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt refresh token: %w", err)
	}
	return ciphertext, nil
}

func (s *TokenStore) Decrypt(ciphertext string) (string, error) {
	plaintext, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// SaveTokenSet encrypts the refresh token of ts and upserts it for the user.
// Scopes already granted are kept when ts does not report any. Only a
// completed link may create the row.
func (s *TokenStore) SaveTokenSet(
	ctx context.Context,
	userID string,
	provider models.Provider,
	ts *core.TokenSet,
) (*models.ProviderAccount, error) {
	existing, err := s.Get(ctx, userID, provider)
	if err != nil {
		return nil, err
	}

	var current models.ProviderAccount
	if existing != nil {
		current = *existing
	}
	next, err := s.withTokenSet(current, userID, provider, ts)
	if err != nil {
		return nil, err
	}
	if err := s.Upsert(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// UpdateTokenSet writes a refreshed token set over account. It returns
// ErrNotLinked when the row was deleted after account was loaded.
func (s *TokenStore) UpdateTokenSet(
	ctx context.Context,
	account *models.ProviderAccount,
	ts *core.TokenSet,
) (*models.ProviderAccount, error) {
	next, err := s.withTokenSet(*account, account.UserID, account.Provider, ts)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateProviderAccountTokens(ctx, &next)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotLinked
	}
	return &next, nil
}

func (s *TokenStore) withTokenSet(
	current models.ProviderAccount,
	userID string,
	provider models.Provider,
	ts *core.TokenSet,
) (models.ProviderAccount, error) {
	encrypted, err := s.Encrypt(ts.RefreshToken)
	if err != nil {
		return models.ProviderAccount{}, err
	}
	scopes := ts.Scopes
	if len(scopes) == 0 {
		scopes = current.Scopes()
	}
	return current.WithTokenSet(userID, provider, encrypted, ts.ExpiresAt, scopes, s.now()), nil
}
