// Package password serves the password reset continuation page.
package password

import (
	"net/http"
	"strings"

	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

// Module provides the password reset routes.
type Module struct {
	base modulehandler.Base
}

// New returns a password module.
func New(base modulehandler.Base) Module {
	return Module{base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "password" }

// Mount wires password route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.PasswordReset, m.handleReset)
	mux.HandleFunc(routepath.PasswordPrefix+"{rest...}", m.base.WriteNotFound)
	return module.Mount{Prefix: routepath.PasswordPrefix, Handler: mux}, nil
}

func (m Module) handleReset(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get(routepath.TokenQueryKey))
	status := http.StatusOK
	if token == "" {
		status = http.StatusBadRequest
	}
	loc := m.base.Localizer(w, r)
	m.base.WritePage(w, r, loc, "password.reset.title", status, webtemplates.PasswordReset(loc, token))
}
