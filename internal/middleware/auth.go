package middleware

import (
	"net/http"
	"strings"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserID is the session key holding the authenticated user id
	SessionUserID = "user_id"

	// ContextUserID is the gin context key RequireUser stores the user id under
	ContextUserID = "user_id"

	// DefaultUserHeader is injected by the trusted front door in header mode
	DefaultUserHeader = "X-User-ID"
)

// Authenticator resolves the principal of a request.
type Authenticator struct {
	mode   string
	header string
}

// NewAuthenticator returns an Authenticator for mode. An empty header falls
// back to DefaultUserHeader.
func NewAuthenticator(mode, header string) *Authenticator {
	if header == "" {
		header = DefaultUserHeader
	}
	return &Authenticator{mode: mode, header: header}
}

// principal returns the user id of the request or "" when anonymous.
func (a *Authenticator) principal(c *gin.Context) string {
	switch a.mode {
	case config.AuthModeHeader:
		return strings.TrimSpace(c.GetHeader(a.header))
	default:
		v, _ := sessions.Default(c).Get(SessionUserID).(string)
		return v
	}
}

// RequireUser aborts with 401 unless the request carries a principal.
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := a.principal(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalUser records the principal when present and never aborts.
// Used on the provider callback, which is reached anonymously.
func (a *Authenticator) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := a.principal(c); userID != "" {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// UserID returns the principal stored by RequireUser or OptionalUser.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
