package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrExchangeFailed is returned when the token endpoint rejects a code exchange
	ErrExchangeFailed = errors.New("authorization code exchange failed")

	// ErrMissingRefreshToken is returned when an exchange succeeds without a refresh token
	ErrMissingRefreshToken = fmt.Errorf("%w: provider returned no refresh token", ErrExchangeFailed)

	// ErrRefreshFailed is returned when a refresh token cannot be redeemed
	ErrRefreshFailed = errors.New("token refresh failed")
)
