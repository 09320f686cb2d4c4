// Package signup serves the email-first signup continuation.
package signup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// Client requests verification mails and creates accounts.
type Client interface {
	SendSignupVerification(ctx context.Context, email string) error
	SignUp(ctx context.Context, req backend.SignupRequest) error
}

// Option configures a signup module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithClient sets the backend client.
func WithClient(c Client) Option {
	return func(m *Module) { m.client = c }
}

// WithSlot sets the pending signup slot.
func WithSlot(slot *pendingstore.Slot[pendingstore.PendingSignup]) Option {
	return func(m *Module) { m.slot = slot }
}

// Module provides the signup routes.
type Module struct {
	base   modulehandler.Base
	client Client
	slot   *pendingstore.Slot[pendingstore.PendingSignup]
}

// New returns a signup module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "signup" }

// Mount wires signup route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.client == nil || m.slot == nil {
		return module.Mount{}, fmt.Errorf("signup client and slot are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{base: m.base, client: m.client, slot: m.slot})
	return module.Mount{
		Prefix:   routepath.SignupPrefix,
		Patterns: []string{routepath.Signup},
		Handler:  mux,
	}, nil
}
