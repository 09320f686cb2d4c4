// Package verify serves the email, password-reset, and invitation
// verification landing pages.
package verify

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

// Option configures a verify module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithVerifier sets the verifier for kind.
func WithVerifier(kind verification.Kind, v verification.Verifier) Option {
	return func(m *Module) {
		if m.verifiers == nil {
			m.verifiers = make(map[verification.Kind]verification.Verifier)
		}
		m.verifiers[kind] = v
	}
}

// WithInvitationSlot sets where verified invitations wait for sign-in.
func WithInvitationSlot(slot *pendingstore.Slot[pendingstore.PendingInvitation]) Option {
	return func(m *Module) { m.invitations = slot }
}

// WithSignupSlot sets where verified signup emails are kept.
func WithSignupSlot(slot *pendingstore.Slot[pendingstore.PendingSignup]) Option {
	return func(m *Module) { m.signups = slot }
}

// WithRateLimiter limits verification attempts per client.
func WithRateLimiter(limiter *httpx.ClientLimiter) Option {
	return func(m *Module) { m.limiter = limiter }
}

// WithRedirectDelay overrides the success redirect delay.
func WithRedirectDelay(d time.Duration) Option {
	return func(m *Module) { m.delay = d }
}

// Module provides the verification routes.
type Module struct {
	base        modulehandler.Base
	verifiers   map[verification.Kind]verification.Verifier
	invitations *pendingstore.Slot[pendingstore.PendingInvitation]
	signups     *pendingstore.Slot[pendingstore.PendingSignup]
	limiter     *httpx.ClientLimiter
	delay       time.Duration
}

// New returns a verify module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "verify" }

// Mount wires verification route handlers.
func (m Module) Mount() (module.Mount, error) {
	for _, kind := range []verification.Kind{verification.KindEmail, verification.KindPasswordReset, verification.KindInvitation} {
		if m.verifiers[kind] == nil {
			return module.Mount{}, fmt.Errorf("verifier for %q is required", kind)
		}
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m))
	return module.Mount{Prefix: routepath.VerifyPrefix, Handler: mux}, nil
}
