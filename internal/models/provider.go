package models

import (
	"errors"
	"strings"
)

// Provider identifies an external cloud-storage account provider.
type Provider string

const (
	ProviderGoogle    Provider = "Google"
	ProviderMicrosoft Provider = "Microsoft"
)

// ErrUnknownProvider is returned by ParseProvider for unrecognised names
var ErrUnknownProvider = errors.New("unknown provider")

// KnownProviders lists every provider the service understands, in display order
var KnownProviders = []Provider{ProviderGoogle, ProviderMicrosoft}

// ParseProvider maps a case-insensitive name ("google", "Microsoft") to a Provider.
func ParseProvider(name string) (Provider, error) {
	for _, p := range KnownProviders {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return "", ErrUnknownProvider
}

// Slug is the lowercase form used in URLs and metric labels.
func (p Provider) Slug() string {
	return strings.ToLower(string(p))
}

func (p Provider) String() string {
	return string(p)
}
