package files

import (
	"fmt"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// Registry maps providers to their file provider.
type Registry map[models.Provider]core.FileProvider

// NewRegistry indexes file providers by their provider.
func NewRegistry(providers ...core.FileProvider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		r[p.Provider()] = p
	}
	return r
}

// Get returns the file provider for provider.
func (r Registry) Get(provider models.Provider) (core.FileProvider, error) {
	p, ok := r[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrProviderNotRegistered, provider)
	}
	return p, nil
}
