package core

import "errors"

// ErrProviderNotRegistered is returned by the OAuth and file registries for
// providers that are known but not configured in this deployment.
var ErrProviderNotRegistered = errors.New("provider not registered")
