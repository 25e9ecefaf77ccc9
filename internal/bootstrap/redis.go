package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"

	"github.com/redis/go-redis/v9"
)

// initializeStateRedisClient initializes the go-redis client for link states.
// Returns nil unless STATE_STORE=redis.
func initializeStateRedisClient(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*redis.Client, error) {
	if cfg.StateStore != config.StateStoreRedis {
		return nil, nil //nolint:nilnil // redis client not needed in this configuration
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.RedisConnTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("link state Redis client initialized", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return client, nil
}

// initializeStateStore picks the link state backend. The returned cleaner is
// nil for backends that expire entries on their own.
func initializeStateStore(
	cfg *config.Config,
	db *store.Store,
	redisClient *redis.Client,
	logger *slog.Logger,
) (core.StateStore, linkstate.Cleaner) {
	switch cfg.StateStore {
	case config.StateStoreRedis:
		logger.Info("link state store: redis (shared across instances)")
		return linkstate.NewRedis(redisClient, cfg.RedisKeyPrefix+"state:"), nil
	case config.StateStoreDatabase:
		logger.Info("link state store: database (shared across instances)")
		s := linkstate.NewDatabase(db)
		return s, s
	default: // memory
		logger.Info("link state store: memory (single instance only)")
		s := linkstate.NewMemory()
		return s, s
	}
}
