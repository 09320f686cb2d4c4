package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/flash"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/webcookie"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

type handlers struct {
	base     modulehandler.Base
	signIn   SignInClient
	signOut  func(sessionID string) SignOutClient
	sessions SessionStore
	accepter Accepter
}

func newHandlers(m Module) handlers {
	return handlers{
		base:     m.base,
		signIn:   m.signIn,
		signOut:  m.signOut,
		sessions: m.sessions,
		accepter: m.accepter,
	}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.sessions.Resolve(r)
	if !ok {
		h.base.Redirect(w, r, routepath.Login)
		return
	}
	if h.continueAuthenticated(w, r, rec, "") {
		return
	}
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "home.title", http.StatusOK, webtemplates.Home(loc))
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	next := nextPath(query.Get(routepath.NextQueryKey))
	if rec, ok := h.sessions.Resolve(r); ok {
		h.continueAuthenticated(w, r, rec, orRoot(next))
		return
	}
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "login.title", http.StatusOK, webtemplates.Login(loc, webtemplates.LoginView{
		Next:     next,
		Verified: query.Get(routepath.VerifiedQueryKey) == routepath.VerifiedSuccess,
	}))
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, webtemplates.LoginView{ErrorKey: "login.error.required"}, http.StatusBadRequest)
		return
	}
	view := webtemplates.LoginView{
		Email: strings.TrimSpace(r.PostForm.Get("email")),
		Next:  nextPath(r.PostForm.Get(routepath.NextQueryKey)),
	}
	password := r.PostForm.Get("password")
	if view.Email == "" || password == "" {
		view.ErrorKey = "login.error.required"
		h.renderLoginError(w, r, view, http.StatusBadRequest)
		return
	}

	logger := h.base.Logger(r)
	tokens, err := h.signIn.SignIn(r.Context(), view.Email, password)
	if err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Status < http.StatusInternalServerError {
			view.ErrorKey = "login.error.invalid"
			h.renderLoginError(w, r, view, http.StatusUnauthorized)
			return
		}
		logger.Warn("sign in", zap.Error(err))
		view.ErrorKey = "login.error.unavailable"
		h.renderLoginError(w, r, view, http.StatusBadGateway)
		return
	}

	rec, err := h.sessions.Create(r.Context(), tokens)
	if err != nil {
		logger.Error("open session", zap.Error(err))
		view.ErrorKey = "login.error.unavailable"
		h.renderLoginError(w, r, view, http.StatusBadGateway)
		return
	}
	webcookie.Session.Write(w, r, rec.ID, h.base.Policy())
	logger.Info("signed in", zap.String("user_id", rec.UserID))

	h.continueAuthenticated(w, r, rec, orRoot(view.Next))
}

// continueAuthenticated runs the auto-accept for a signed-in browser. It
// follows the accept navigation when one happened, else redirects to
// fallback. An empty fallback leaves the response to the caller when
// nothing was accepted; the return value reports whether it responded.
func (h handlers) continueAuthenticated(w http.ResponseWriter, r *http.Request, rec session.Record, fallback string) bool {
	if h.accepter != nil {
		scope := h.base.BrowserScope(w, r)
		recorder := h.accepter.Run(r.Context(), h.base.Logger(r), scope, rec.ID)
		if target, _, ok := recorder.Destination(); ok {
			recorder.Flush(w, r, h.base)
			h.base.Redirect(w, r, target)
			return true
		}
	}
	if fallback == "" {
		return false
	}
	h.base.Redirect(w, r, fallback)
	return true
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if rec, ok := h.sessions.Resolve(r); ok {
		logger := h.base.Logger(r)
		if h.signOut != nil {
			if err := h.signOut(rec.ID).SignOut(r.Context()); err != nil {
				logger.Warn("sign out", zap.Error(err))
			}
		}
		if err := h.sessions.Delete(r.Context(), rec.ID); err != nil {
			logger.Warn("delete session", zap.Error(err))
		}
	}
	webcookie.Session.Clear(w, r, h.base.Policy())
	h.base.Notify(w, r, flash.Notice{Kind: flash.KindInfo, Key: "auth.notice.signed_out"})
	h.base.Redirect(w, r, routepath.Login)
}

func (h handlers) renderLoginError(w http.ResponseWriter, r *http.Request, view webtemplates.LoginView, status int) {
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "login.title", status, webtemplates.Login(loc, view))
}

func nextPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if !routepath.IsLocalPath(raw) || raw == routepath.Login {
		return ""
	}
	return raw
}

func orRoot(path string) string {
	if path == "" {
		return routepath.Root
	}
	return path
}
