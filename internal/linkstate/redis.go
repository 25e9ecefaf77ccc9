package linkstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"github.com/redis/go-redis/v9"
)

var _ core.StateStore = (*Redis)(nil)

// DefaultRedisPrefix namespaces link-state keys.
const DefaultRedisPrefix = "linker:state:"

// Redis is a StateStore shared by every instance. Expiry is delegated to
// Redis key TTLs and Take uses GETDEL, so a state is returned at most once.
type Redis struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedis wraps an existing go-redis client. The caller owns the client.
func NewRedis(client redis.UniversalClient, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisPrefix
	}
	return &Redis{client: client, keyPrefix: keyPrefix}
}

// Save stores entry as JSON with an EX of ttl.
func (r *Redis) Save(ctx context.Context, state string, entry models.LinkState, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode link state: %w", err)
	}
	if err := r.client.Set(ctx, r.keyPrefix+state, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save link state: %w", err)
	}
	return nil
}

// Take atomically reads and deletes the entry.
func (r *Redis) Take(ctx context.Context, state string) (*models.LinkState, error) {
	raw, err := r.client.GetDel(ctx, r.keyPrefix+state).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("take link state: %w", err)
	}

	var entry models.LinkState
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode link state: %w", err)
	}
	return &entry, nil
}
