package models

import (
	"strings"
	"time"
)

// ProviderAccount links one user to one external provider.
// The refresh token is only ever stored encrypted.
type ProviderAccount struct {
	ID                    string   `gorm:"primaryKey;type:varchar(36)"`
	UserID                string   `gorm:"not null;type:varchar(191);uniqueIndex:idx_provider_accounts_user_provider,priority:1"`
	Provider              Provider `gorm:"not null;type:varchar(32);uniqueIndex:idx_provider_accounts_user_provider,priority:2"`
	EncryptedRefreshToken string   `gorm:"not null;type:text"`
	ExpiresAt             time.Time
	ScopeCSV              string `gorm:"column:scope_csv;type:text"` // space-joined granted scopes

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by ProviderAccount to `provider_accounts`
func (ProviderAccount) TableName() string {
	return "provider_accounts"
}

// Scopes returns the granted scopes as a slice.
func (a ProviderAccount) Scopes() []string {
	return strings.Fields(a.ScopeCSV)
}

// WithTokenSet returns a copy of a updated from a freshly issued token set.
// The receiver is never modified; ID and CreatedAt survive from an existing row.
// A zero receiver describes an account that has not been persisted yet.
func (a ProviderAccount) WithTokenSet(
	userID string,
	provider Provider,
	encryptedRefreshToken string,
	expiresAt time.Time,
	scopes []string,
	now time.Time,
) ProviderAccount {
	next := ProviderAccount{
		ID:                    a.ID,
		UserID:                userID,
		Provider:              provider,
		EncryptedRefreshToken: encryptedRefreshToken,
		ExpiresAt:             expiresAt.UTC(),
		ScopeCSV:              strings.Join(scopes, " "),
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             now.UTC(),
	}
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now.UTC()
	}
	return next
}
