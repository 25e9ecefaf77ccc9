package linkstate

import (
	"context"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

var _ core.StateStore = (*Database)(nil)

// Repository is the subset of the store used by Database.
type Repository interface {
	SaveLinkState(ctx context.Context, entry *models.LinkState) error
	TakeLinkState(ctx context.Context, state string, now time.Time) (*models.LinkState, error)
	DeleteExpiredLinkStates(ctx context.Context, now time.Time) (int64, error)
}

// Database keeps link states in the link_states table so that every
// instance sharing the database can complete a callback.
type Database struct {
	repo Repository
	now  func() time.Time
}

// NewDatabase creates a StateStore backed by repo.
func NewDatabase(repo Repository) *Database {
	return &Database{repo: repo, now: time.Now}
}

func (d *Database) Save(ctx context.Context, state string, entry models.LinkState, ttl time.Duration) error {
	now := d.now()
	entry.State = state
	entry.CreatedAt = now.UTC()
	entry.ExpiresAt = now.Add(ttl)
	return d.repo.SaveLinkState(ctx, &entry)
}

func (d *Database) Take(ctx context.Context, state string) (*models.LinkState, error) {
	return d.repo.TakeLinkState(ctx, state, d.now())
}

// Cleanup deletes expired rows.
func (d *Database) Cleanup(ctx context.Context) (int64, error) {
	return d.repo.DeleteExpiredLinkStates(ctx, d.now())
}
