// Package module defines the feature contract used by web composition.
package module

import "net/http"

// ResolveSignedIn reports whether the request is associated with a signed-in user.
type ResolveSignedIn func(*http.Request) bool

// Mount describes a module route mount. Prefix is a subtree pattern ending
// in "/"; Patterns lists extra exact patterns served by the same handler.
type Mount struct {
	Prefix   string
	Patterns []string
	Handler  http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
