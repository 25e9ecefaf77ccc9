package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db     *gorm.DB
	driver string
}

// New opens the database and migrates the provider_accounts and link_states tables.
func New(driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if strings.HasPrefix(strings.ToLower(driver), "sqlite") {
		// SQLite allows one writer; an in-memory database also lives
		// only as long as its single connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if strings.Contains(dsn, ":memory:") {
			sqlDB.SetConnMaxLifetime(0)
			sqlDB.SetConnMaxIdleTime(0)
		}
	}

	if err := db.AutoMigrate(
		&models.ProviderAccount{},
		&models.LinkState{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Driver returns the configured database driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Health pings the underlying connection pool.
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
