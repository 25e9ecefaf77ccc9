package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/middleware"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/services"
	"github.com/Reblayzer/BachelorCode-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

// LinkHandler serves the provider linking endpoints.
type LinkHandler struct {
	links      *services.LinkService
	baseURL    string
	successURL string
	errorURL   string
	logger     *slog.Logger
}

// NewLinkHandler creates a link handler. baseURL is the public origin used to
// build the provider callback URL. Empty landing URLs make the callback
// answer with JSON instead of a redirect.
func NewLinkHandler(
	links *services.LinkService,
	baseURL, successURL, errorURL string,
	logger *slog.Logger,
) *LinkHandler {
	return &LinkHandler{
		links:      links,
		baseURL:    strings.TrimRight(baseURL, "/"),
		successURL: successURL,
		errorURL:   errorURL,
		logger:     logger,
	}
}

// LinkedAccount is the public view of a provider account. It never carries tokens.
type LinkedAccount struct {
	Provider  models.Provider `json:"provider"`
	Scopes    []string        `json:"scopes"`
	ExpiresAt time.Time       `json:"expiresAt"`
	LinkedAt  time.Time       `json:"linkedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CallbackURL returns the redirect URI registered with provider.
func (h *LinkHandler) CallbackURL(provider models.Provider) string {
	return h.baseURL + "/api/providers/" + provider.Slug() + "/callback"
}

// StartLink returns the provider authorize URL for the current user.
// POST /api/providers/:provider/link
func (h *LinkHandler) StartLink(c *gin.Context) {
	provider, err := models.ParseProvider(c.Param("provider"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var scopes []string
	if raw := c.Query("scope"); raw != "" {
		scopes = strings.Fields(raw)
	}

	authURL, err := h.links.Start(
		c.Request.Context(),
		middleware.UserID(c),
		provider,
		h.CallbackURL(provider),
		scopes,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirectUrl": authURL})
}

// Callback completes a link from the provider redirect.
// GET /api/providers/:provider/callback?state&code[&error]
func (h *LinkHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	providerName := c.Param("provider")

	provider, err := models.ParseProvider(providerName)
	if err != nil {
		h.callbackFailed(c, providerName, err)
		return
	}

	if providerError := c.Query("error"); providerError != "" {
		err := h.links.CallbackError(ctx, provider, c.Query("state"), providerError)
		h.callbackFailed(c, provider.Slug(), err)
		return
	}

	result, err := h.links.Callback(ctx, services.CallbackRequest{
		Provider:  provider,
		State:     c.Query("state"),
		Code:      c.Query("code"),
		Principal: middleware.UserID(c),
	})
	if err != nil {
		h.callbackFailed(c, provider.Slug(), err)
		return
	}

	if h.successURL == "" {
		c.JSON(http.StatusOK, gin.H{
			"provider": result.Provider,
			"linked":   true,
		})
		return
	}
	h.redirect(c, h.successURL, map[string]string{"provider": provider.Slug()}, nil)
}

func (h *LinkHandler) callbackFailed(c *gin.Context, provider string, err error) {
	if h.errorURL == "" {
		respondError(c, h.logger, err)
		return
	}
	kind := classify(err)
	h.redirect(c, h.errorURL, map[string]string{
		"provider": provider,
		"error":    kind.code,
	}, err)
}

func (h *LinkHandler) redirect(c *gin.Context, landing string, params map[string]string, cause error) {
	target, err := util.WithQuery(landing, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cause != nil {
		h.logger.Warn("provider link failed", "provider", params["provider"], "error", cause)
	}
	c.Redirect(http.StatusFound, target)
}

// Disconnect unlinks a provider from the current user.
// DELETE /api/providers/:provider
func (h *LinkHandler) Disconnect(c *gin.Context) {
	provider, err := models.ParseProvider(c.Param("provider"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.links.Disconnect(c.Request.Context(), middleware.UserID(c), provider); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLinked returns the providers linked by the current user.
// GET /api/providers
func (h *LinkHandler) ListLinked(c *gin.Context) {
	accounts, err := h.links.ListLinked(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]LinkedAccount, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, LinkedAccount{
			Provider:  a.Provider,
			Scopes:    a.Scopes(),
			ExpiresAt: a.ExpiresAt,
			LinkedAt:  a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
