package core

import (
	"context"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// StateStore keeps pending link attempts until their callback arrives.
type StateStore interface {
	// Save stores the entry under state, replacing any previous one.
	Save(ctx context.Context, state string, entry models.LinkState, ttl time.Duration) error

	// Take atomically reads and removes the entry. It returns (nil, nil)
	// when the state is unknown, expired or already taken.
	Take(ctx context.Context, state string) (*models.LinkState, error)
}

// AccountRepository persists ProviderAccount rows.
type AccountRepository interface {
	GetProviderAccount(
		ctx context.Context,
		userID string,
		provider models.Provider,
	) (*models.ProviderAccount, error)
	ListProviderAccounts(ctx context.Context, userID string) ([]models.ProviderAccount, error)
	UpsertProviderAccount(ctx context.Context, account *models.ProviderAccount) error
	// UpdateProviderAccountTokens only touches an existing row; false means
	// there was none to update.
	UpdateProviderAccountTokens(ctx context.Context, account *models.ProviderAccount) (bool, error)
	DeleteProviderAccount(ctx context.Context, userID string, provider models.Provider) error
}

// Cipher encrypts secrets at rest.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
