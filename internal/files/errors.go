package files

import (
	"errors"
	"fmt"

	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

var (
	// ErrProviderAPI is returned for non-2xx responses from a provider file API
	ErrProviderAPI = errors.New("provider API error")

	// ErrInvalidPageToken is returned for a page token this service did not issue
	ErrInvalidPageToken = errors.New("invalid page token")
)

// maxLoggedBody bounds how much of an error response is written to logs.
const maxLoggedBody = 512

func apiError(provider models.Provider, status int) error {
	return fmt.Errorf("%w: %s returned status %d", ErrProviderAPI, provider, status)
}

func truncate(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody]) + "..."
}
