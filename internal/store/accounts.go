package store

import (
	"context"
	"errors"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ core.AccountRepository = (*Store)(nil)
	_ core.MetricsStore      = (*Store)(nil)
)

// GetProviderAccount returns the account for (userID, provider), or nil when absent.
func (s *Store) GetProviderAccount(
	ctx context.Context,
	userID string,
	provider models.Provider,
) (*models.ProviderAccount, error) {
	var account models.ProviderAccount
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListProviderAccounts returns every account linked by userID.
func (s *Store) ListProviderAccounts(
	ctx context.Context,
	userID string,
) ([]models.ProviderAccount, error) {
	var accounts []models.ProviderAccount
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("provider ASC").
		Find(&accounts).Error
	return accounts, err
}

// UpsertProviderAccount inserts the account or, when (user_id, provider)
// already exists, updates the token columns in place. The stored row keeps
// its original id and created_at; account is reloaded from it.
func (s *Store) UpsertProviderAccount(ctx context.Context, account *models.ProviderAccount) error {
	if account.UserID == "" || account.Provider == "" {
		return ErrInvalidAccount
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"encrypted_refresh_token",
			"expires_at",
			"scope_csv",
			"updated_at",
		}),
	}).Create(account).Error
	if err != nil {
		return err
	}

	var stored models.ProviderAccount
	if err := db.Where("user_id = ? AND provider = ?", account.UserID, account.Provider).
		First(&stored).Error; err != nil {
		return err
	}
	*account = stored
	return nil
}

// UpdateProviderAccountTokens rewrites the token columns of an existing
// (user_id, provider) row and never inserts. It reports whether a row matched.
func (s *Store) UpdateProviderAccountTokens(
	ctx context.Context,
	account *models.ProviderAccount,
) (bool, error) {
	if account.UserID == "" || account.Provider == "" {
		return false, ErrInvalidAccount
	}

	result := s.db.WithContext(ctx).
		Model(&models.ProviderAccount{}).
		Where("user_id = ? AND provider = ?", account.UserID, account.Provider).
		Updates(map[string]any{
			"encrypted_refresh_token": account.EncryptedRefreshToken,
			"expires_at":              account.ExpiresAt,
			"scope_csv":               account.ScopeCSV,
			"updated_at":              account.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteProviderAccount removes the account. Deleting a missing row is not an error.
func (s *Store) DeleteProviderAccount(
	ctx context.Context,
	userID string,
	provider models.Provider,
) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		Delete(&models.ProviderAccount{}).Error
}

// CountAccountsByProvider returns how many users linked the given provider.
func (s *Store) CountAccountsByProvider(provider string) (int64, error) {
	var count int64
	err := s.db.Model(&models.ProviderAccount{}).
		Where("provider = ?", provider).
		Count(&count).Error
	return count, err
}
