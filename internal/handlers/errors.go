package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/files"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// ErrInvalidPageSize is returned for a non-numeric pageSize query parameter
var ErrInvalidPageSize = errors.New("invalid pageSize")

// errorKind maps a sentinel error to its HTTP representation.
// code is the short value put on the landing page redirect.
type errorKind struct {
	err     error
	status  int
	message string
	code    string
}

// errorKinds is matched in order; the first errors.Is hit wins.
var errorKinds = []errorKind{
	{services.ErrStateExpiredOrReused, http.StatusGone, "link request expired or already used", "state_expired"},
	{services.ErrProviderExchangeFailed, http.StatusBadGateway, "provider rejected the authorization code", "exchange_failed"},
	{services.ErrProviderMismatch, http.StatusBadRequest, "provider does not match link request", "provider_mismatch"},
	{services.ErrUserMismatch, http.StatusForbidden, "link request belongs to another user", "user_mismatch"},
	{services.ErrProviderDenied, http.StatusBadRequest, "provider denied the request", "access_denied"},
	{services.ErrMissingCode, http.StatusBadRequest, "authorization code is required", "missing_code"},
	{services.ErrNotLinked, http.StatusNotFound, "provider not linked", "not_linked"},
	{services.ErrDecryptionFailed, http.StatusInternalServerError, "internal error", "internal_error"},
	{services.ErrTokenRefreshFailed, http.StatusBadGateway, "provider token refresh failed", "refresh_failed"},
	{files.ErrInvalidPageToken, http.StatusBadRequest, "invalid page token", "invalid_request"},
	// Provider clients wrap transport timeouts in ErrProviderAPI.
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "provider timed out", "timeout"},
	{files.ErrProviderAPI, http.StatusBadGateway, "provider API error", "provider_error"},
	{core.ErrProviderNotRegistered, http.StatusNotFound, "provider not available", "provider_unavailable"},
	{models.ErrUnknownProvider, http.StatusBadRequest, "unknown provider", "unknown_provider"},
	{ErrInvalidPageSize, http.StatusBadRequest, "invalid pageSize", "invalid_request"},
}

var internalError = errorKind{
	status:  http.StatusInternalServerError,
	message: "internal error",
	code:    "internal_error",
}

func classify(err error) errorKind {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.err) {
			return kind
		}
	}
	return internalError
}

// respondError is the single translator from service errors to HTTP
// responses. Details stay in the log.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	kind := classify(err)

	level := slog.LevelWarn
	if kind.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(c.Request.Context(), level, "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", kind.status,
		"error", err,
	)

	c.AbortWithStatusJSON(kind.status, gin.H{"error": kind.message})
}
