package services

import "errors"

var (
	ErrStateExpiredOrReused   = errors.New("link state expired or already used")
	ErrProviderExchangeFailed = errors.New("provider code exchange failed")
	ErrProviderMismatch       = errors.New("callback provider does not match link state")
	ErrUserMismatch           = errors.New("callback user does not match link state")
	ErrProviderDenied         = errors.New("provider denied the link request")
	ErrMissingCode            = errors.New("authorization code is required")

	ErrNotLinked          = errors.New("provider account not linked")
	ErrDecryptionFailed   = errors.New("stored refresh token cannot be decrypted")
	ErrTokenRefreshFailed = errors.New("provider token refresh failed")
)
