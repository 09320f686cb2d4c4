// Package acceptance runs the pending-invitation auto-accept for a request
// whose user just became authenticated.
package acceptance

import (
	"context"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/navigator"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

// AccepterFor builds an invitation accepter authenticated as a session.
type AccepterFor func(sessionID string) verification.InvitationAccepter

// BackendAccepter accepts through client with the session's tokens.
func BackendAccepter(client *backend.Client, sessions *session.Store) AccepterFor {
	return func(sessionID string) verification.InvitationAccepter {
		return client.Authenticated(sessions.Tokens(sessionID, client))
	}
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver reports accept outcomes.
func WithObserver(observer verification.Observer) Option {
	return func(r *Runner) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// Runner wires a coordinator per authenticated request.
type Runner struct {
	invitations *pendingstore.Slot[pendingstore.PendingInvitation]
	accepterFor AccepterFor
	observer    verification.Observer
}

// New builds a runner.
func New(invitations *pendingstore.Slot[pendingstore.PendingInvitation], accepterFor AccepterFor, opts ...Option) *Runner {
	r := &Runner{invitations: invitations, accepterFor: accepterFor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run accepts the browser's pending invitation, if any, and returns the
// recorded effects. The recorder reports no destination when nothing was
// pending.
func (r *Runner) Run(ctx context.Context, logger *zap.Logger, scope, sessionID string) *navigator.Recorder {
	rec := navigator.NewRecorder()
	if r == nil || r.invitations == nil || r.accepterFor == nil {
		return rec
	}
	opts := []verification.CoordinatorOption{verification.WithCoordinatorLogger(logger)}
	if r.observer != nil {
		opts = append(opts, verification.WithCoordinatorObserver(r.observer))
	}
	coordinator := verification.NewCoordinator(r.invitations.For(scope), r.accepterFor(sessionID), rec, opts...)
	coordinator.OnAuthChanged(ctx, true)
	return rec
}
