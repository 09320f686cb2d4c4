// Package modules builds the web feature modules from shared dependencies.
package modules

import (
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/acceptance"
	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the clients, stores, and policies shared by feature
// modules. The server builds it once at startup.
type Dependencies struct {
	Base modulehandler.Base

	// Backend is the public OURHOUR client. Authenticated clients are
	// derived from it per session.
	Backend  *backend.Client
	Sessions *session.Store
	Accepter *acceptance.Runner

	Verifiers   map[verification.Kind]verification.Verifier
	Invitations *pendingstore.Slot[pendingstore.PendingInvitation]
	Signups     *pendingstore.Slot[pendingstore.PendingSignup]

	VerifyLimiter *httpx.ClientLimiter
	RedirectDelay time.Duration
}

// BuildOutput groups modules by the guard they mount behind.
type BuildOutput struct {
	Public    []Module
	Protected []Module
}
