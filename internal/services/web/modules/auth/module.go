// Package auth serves sign-in and sign-out, and runs the pending invitation
// auto-accept when a browser becomes authenticated.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/navigator"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
)

// SignInClient exchanges credentials for tokens.
type SignInClient interface {
	SignIn(ctx context.Context, email, password string) (backend.Tokens, error)
}

// SignOutClient revokes the tokens of the session it was built for.
type SignOutClient interface {
	SignOut(ctx context.Context) error
}

// SessionStore opens, resolves, and closes sessions.
type SessionStore interface {
	Create(ctx context.Context, tokens backend.Tokens) (session.Record, error)
	Resolve(r *http.Request) (session.Record, bool)
	Delete(ctx context.Context, id string) error
}

// Accepter runs the pending invitation auto-accept for a session.
type Accepter interface {
	Run(ctx context.Context, logger *zap.Logger, scope, sessionID string) *navigator.Recorder
}

// Option configures an auth module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithSignIn sets the sign-in client.
func WithSignIn(c SignInClient) Option {
	return func(m *Module) { m.signIn = c }
}

// WithSignOut sets the per-session sign-out client factory.
func WithSignOut(f func(sessionID string) SignOutClient) Option {
	return func(m *Module) { m.signOut = f }
}

// WithSessions sets the session store.
func WithSessions(s SessionStore) Option {
	return func(m *Module) { m.sessions = s }
}

// WithAccepter sets the auto-accept runner.
func WithAccepter(a Accepter) Option {
	return func(m *Module) { m.accepter = a }
}

// Module provides the sign-in routes.
type Module struct {
	base     modulehandler.Base
	signIn   SignInClient
	signOut  func(sessionID string) SignOutClient
	sessions SessionStore
	accepter Accepter
}

// New returns an auth module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Mount wires sign-in route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.signIn == nil || m.sessions == nil {
		return module.Mount{}, fmt.Errorf("sign-in client and session store are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m))
	return module.Mount{
		Patterns: []string{routepath.Root + "{$}", routepath.Login, routepath.Logout},
		Handler:  mux,
	}, nil
}
