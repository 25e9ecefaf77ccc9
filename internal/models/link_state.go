package models

import (
	"strings"
	"time"
)

// LinkState correlates an authorize redirect with its callback.
// It is created on Start and consumed exactly once on Callback.
type LinkState struct {
	State        string    `gorm:"primaryKey;type:varchar(64)" json:"state"`
	UserID       string    `gorm:"not null;type:varchar(191)" json:"user_id"`
	CodeVerifier string    `gorm:"not null;type:varchar(128)" json:"code_verifier"`
	Provider     Provider  `gorm:"not null;type:varchar(32)" json:"provider"`
	RedirectURI  string    `gorm:"type:text" json:"redirect_uri"`
	Scopes       string    `gorm:"type:text" json:"scopes,omitempty"` // space-joined, empty means provider defaults
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name used by LinkState to `link_states`
func (LinkState) TableName() string {
	return "link_states"
}

// RequestedScopes returns the scopes asked for on Start, or nil for the defaults.
func (s *LinkState) RequestedScopes() []string {
	return strings.Fields(s.Scopes)
}

// IsExpired reports whether the state is past its TTL at the given time.
func (s *LinkState) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
