package store

import (
	"context"
	"errors"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveLinkState stores entry, replacing any row with the same state.
func (s *Store) SaveLinkState(ctx context.Context, entry *models.LinkState) error {
	entry.ExpiresAt = entry.ExpiresAt.UTC()
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(entry).Error
}

// TakeLinkState reads and deletes the row for state in one transaction.
// Only the caller whose DELETE removes the row gets it back; concurrent
// callers and expired rows yield (nil, nil).
func (s *Store) TakeLinkState(
	ctx context.Context,
	state string,
	now time.Time,
) (*models.LinkState, error) {
	var taken *models.LinkState

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.LinkState
		err := tx.Where("state = ?", state).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		result := tx.Where("state = ?", state).Delete(&models.LinkState{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 || entry.IsExpired(now) {
			return nil
		}

		taken = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return taken, nil
}

// DeleteExpiredLinkStates removes rows whose TTL passed before now.
func (s *Store) DeleteExpiredLinkStates(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&models.LinkState{})
	return result.RowsAffected, result.Error
}
