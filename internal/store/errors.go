package store

import "errors"

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidAccount is returned when an account is missing its user or provider.
	ErrInvalidAccount = errors.New("account requires user id and provider")

	// ErrUnsupportedDriver is returned for a DATABASE_DRIVER with no dialector.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
