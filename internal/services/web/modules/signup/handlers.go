package signup

import (
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/flash"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

type handlers struct {
	base   modulehandler.Base
	client Client
	slot   *pendingstore.Slot[pendingstore.PendingSignup]
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	scope := h.base.BrowserScope(w, r)
	pending, _ := h.slot.Read(r.Context(), scope)
	h.render(w, r, http.StatusOK, webtemplates.SignupView{Email: pending.Email, Verified: pending.IsVerified})
}

func (h handlers) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	email := ""
	if err := r.ParseForm(); err == nil {
		email = strings.TrimSpace(r.PostForm.Get("email"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		h.render(w, r, http.StatusBadRequest, webtemplates.SignupView{ErrorKey: "signup.error.email_required"})
		return
	}
	if err := h.client.SendSignupVerification(r.Context(), email); err != nil {
		h.base.Logger(r).Warn("send signup verification", zap.Error(err))
		h.base.Notify(w, r, flash.Notice{Kind: flash.KindError, Key: "signup.notice.send_failed"})
		h.base.Redirect(w, r, routepath.Signup)
		return
	}
	h.slot.Save(r.Context(), h.base.BrowserScope(w, r), pendingstore.PendingSignup{Email: email})
	h.base.Redirect(w, r, routepath.Signup)
}

func (h handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	scope := h.base.BrowserScope(w, r)
	pending, ok := h.slot.Read(r.Context(), scope)
	if !ok || !pending.IsVerified {
		h.render(w, r, http.StatusBadRequest, webtemplates.SignupView{Email: pending.Email, ErrorKey: "signup.error.not_verified"})
		return
	}
	view := webtemplates.SignupView{Email: pending.Email, Verified: true}
	if err := r.ParseForm(); err != nil {
		view.ErrorKey = "signup.error.fields_required"
		h.render(w, r, http.StatusBadRequest, view)
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	password := r.PostForm.Get("password")
	if name == "" || password == "" {
		view.ErrorKey = "signup.error.fields_required"
		h.render(w, r, http.StatusBadRequest, view)
		return
	}

	err := h.client.SignUp(r.Context(), backend.SignupRequest{Email: pending.Email, Password: password, Name: name})
	if err != nil {
		h.base.Logger(r).Warn("sign up", zap.Error(err))
		h.base.Notify(w, r, flash.Notice{Kind: flash.KindError, Key: "signup.notice.failed"})
		h.base.Redirect(w, r, routepath.Signup)
		return
	}
	h.slot.Clear(r.Context(), scope)
	h.base.Notify(w, r, flash.Notice{Kind: flash.KindSuccess, Key: "signup.notice.created"})
	h.base.Redirect(w, r, routepath.Login)
}

func (h handlers) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.slot.Clear(r.Context(), h.base.BrowserScope(w, r))
	h.base.Notify(w, r, flash.Notice{Kind: flash.KindInfo, Key: "signup.notice.cancelled"})
	h.base.Redirect(w, r, routepath.Signup)
}

func (h handlers) render(w http.ResponseWriter, r *http.Request, status int, view webtemplates.SignupView) {
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "signup.title", status, webtemplates.Signup(loc, view))
}
