// Package composition assembles the application mux from the module registry.
package composition

import (
	"net/http"

	webapp "github.com/ourhour/ourhour-web/internal/services/web/app"
	"github.com/ourhour/ourhour-web/internal/services/web/modules"
)

// ModuleRegistry builds web module sets from shared dependencies.
type ModuleRegistry interface {
	Build(modules.Dependencies) modules.BuildOutput
}

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	// AuthRequired reports whether the request carries a live session.
	AuthRequired func(*http.Request) bool

	ModuleDependencies modules.Dependencies

	Registry ModuleRegistry
}

// ComposeAppHandler builds the web app handler with the registry's modules.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	authRequired := input.AuthRequired
	if authRequired == nil {
		authRequired = func(*http.Request) bool { return false }
	}

	registry := input.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}
	built := registry.Build(input.ModuleDependencies)

	return webapp.Compose(webapp.ComposeInput{
		AuthRequired:     authRequired,
		PublicModules:    built.Public,
		ProtectedModules: built.Protected,
		NotFound:         http.HandlerFunc(input.ModuleDependencies.Base.WriteNotFound),
	})
}
