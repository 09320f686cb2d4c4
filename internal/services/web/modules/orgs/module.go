// Package orgs serves the signed-in organization pages.
package orgs

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/navigator"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
)

// SessionResolver resolves the request session.
type SessionResolver interface {
	Resolve(r *http.Request) (session.Record, bool)
}

// Accepter runs the pending invitation auto-accept for a session.
type Accepter interface {
	Run(ctx context.Context, logger *zap.Logger, scope, sessionID string) *navigator.Recorder
}

// Module provides the organization routes. It is mounted behind the
// authentication guard.
type Module struct {
	base     modulehandler.Base
	sessions SessionResolver
	accepter Accepter
}

// New returns an orgs module.
func New(base modulehandler.Base, sessions SessionResolver, accepter Accepter) Module {
	return Module{base: base, sessions: sessions, accepter: accepter}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "orgs" }

// Mount wires organization route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.sessions == nil {
		return module.Mount{}, fmt.Errorf("session resolver is required")
	}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.OrgProjectsPattern, m.handleProjects)
	mux.HandleFunc(routepath.OrgsPrefix+"{rest...}", m.base.WriteNotFound)
	return module.Mount{Prefix: routepath.OrgsPrefix, Handler: mux}, nil
}
