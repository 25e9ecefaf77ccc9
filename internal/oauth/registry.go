package oauth

import (
	"fmt"
	"slices"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// Registry maps providers to their OAuth client.
type Registry map[models.Provider]core.OAuthClient

// NewRegistry indexes clients by their provider.
func NewRegistry(clients ...core.OAuthClient) Registry {
	r := make(Registry, len(clients))
	for _, c := range clients {
		r[c.Provider()] = c
	}
	return r
}

// Get returns the client for provider.
func (r Registry) Get(provider models.Provider) (core.OAuthClient, error) {
	c, ok := r[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrProviderNotRegistered, provider)
	}
	return c, nil
}

// Providers returns the registered providers in a stable order.
func (r Registry) Providers() []models.Provider {
	providers := make([]models.Provider, 0, len(r))
	for p := range r {
		providers = append(providers, p)
	}
	slices.Sort(providers)
	return providers
}
