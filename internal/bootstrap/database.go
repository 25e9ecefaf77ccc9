package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"
)

// initializeDatabase opens and migrates the database, then checks it answers
func initializeDatabase(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*store.Store, error) {
	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DBInitTimeout)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	logger.Info("database initialized", "driver", cfg.DatabaseDriver)
	return db, nil
}
