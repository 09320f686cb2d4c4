// Package modulehandler provides the shared base for web module handlers.
//
// Modules embed Base to get localization, page rendering, flash notices,
// browser scoping, and error handling without duplicating the scaffold.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/platform/logging"
	module "github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/flash"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	webi18n "github.com/ourhour/ourhour-web/internal/services/web/platform/i18n"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/pagerender"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/webcookie"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/weberror"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

// Base carries request-scoped helpers shared by module handlers.
type Base struct {
	policy   requestmeta.SchemePolicy
	renderer pagerender.Renderer
	logger   *zap.Logger
	signedIn module.ResolveSignedIn
	newID    func() string
}

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the fallback logger used outside request middleware.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSignedIn attaches the signed-in resolver used for layout chrome.
func WithSignedIn(resolve module.ResolveSignedIn) Option {
	return func(b *Base) { b.signedIn = resolve }
}

// WithBrowserIDGenerator overrides browser id generation.
func WithBrowserIDGenerator(newID func() string) Option {
	return func(b *Base) {
		if newID != nil {
			b.newID = newID
		}
	}
}

// NewBase builds a handler base.
func NewBase(policy requestmeta.SchemePolicy, opts ...Option) Base {
	b := Base{
		policy:   policy,
		renderer: pagerender.Renderer{Flash: flash.Jar{Policy: policy}},
		logger:   zap.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Policy returns the request scheme policy.
func (b Base) Policy() requestmeta.SchemePolicy { return b.policy }

// Logger returns the request logger.
func (b Base) Logger(r *http.Request) *zap.Logger {
	return logging.FromContext(httpx.RequestContext(r), b.logger)
}

// Localizer resolves the request language, persisting an explicit choice.
func (b Base) Localizer(w http.ResponseWriter, r *http.Request) *webi18n.Localizer {
	return webi18n.FromRequest(w, r, b.policy)
}

// IsSignedIn reports whether the request has a live session.
func (b Base) IsSignedIn(r *http.Request) bool {
	return b.signedIn != nil && b.signedIn(r)
}

// BrowserScope returns the browser id that scopes pending records, minting
// and setting one on first visit.
func (b Base) BrowserScope(w http.ResponseWriter, r *http.Request) string {
	if id, ok := webcookie.Browser.Read(r); ok {
		return id
	}
	id := b.newID()
	webcookie.Browser.Write(w, r, id, b.policy)
	return id
}

// Notify queues a flash notice for the next rendered page.
func (b Base) Notify(w http.ResponseWriter, r *http.Request, notice flash.Notice) {
	flash.Jar{Policy: b.policy}.Write(w, r, notice)
}

// Redirect writes an HTMX-aware redirect.
func (Base) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	httpx.WriteRedirect(w, r, location)
}

// WritePage renders body in the shared layout. titleKey is localized.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, loc *webi18n.Localizer, titleKey string, statusCode int, body templ.Component) {
	title := ""
	if key := strings.TrimSpace(titleKey); key != "" {
		title = loc.T(key)
	}
	err := b.renderer.Write(w, r, loc, loc.Lang(), pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
		SignedIn:   b.IsSignedIn(r),
	})
	if err != nil {
		b.Logger(r).Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// WriteError renders a user-safe error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	loc := b.Localizer(w, r)
	weberror.Write(w, r, b.renderer, loc, loc.Lang(), err)
}

// WriteNotFound renders the localized 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	loc := b.Localizer(w, r)
	b.WritePage(w, r, loc, "error.not_found.heading", http.StatusNotFound, webtemplates.ErrorState(loc, http.StatusNotFound))
}
