package models

import "time"

// CachedAccessToken is the value kept in the access-token cache.
// Fields are exported so the Redis-backed caches can JSON-encode it.
type CachedAccessToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
