// Package linkstate provides the StateStore backends that hold a pending
// link attempt between the authorize redirect and its callback.
package linkstate

import (
	"context"
	"time"
)

// DefaultTTL is how long a user has to complete the provider consent screen.
const DefaultTTL = 10 * time.Minute

// Cleaner is implemented by backends that need periodic removal of expired entries.
type Cleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

var (
	_ Cleaner = (*Memory)(nil)
	_ Cleaner = (*Database)(nil)
)
