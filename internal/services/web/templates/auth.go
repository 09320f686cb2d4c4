package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// LoginView is the login page state.
type LoginView struct {
	Email    string
	Next     string
	Verified bool
	ErrorKey string
}

// Login renders the login form.
func Login(loc Localizer, view LoginView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"auth\">")
		h.element("h1", "", T(loc, "login.title"))
		if view.Verified {
			h.element("p", "banner", T(loc, "login.verified_banner"))
		}
		if view.ErrorKey != "" {
			h.element("p", "error", T(loc, view.ErrorKey))
		}
		h.formOpen(routepath.Login)
		h.hidden(routepath.NextQueryKey, view.Next)
		h.input("email", "email", T(loc, "login.email"), view.Email)
		h.input("password", "password", T(loc, "login.password"), "")
		h.submit(T(loc, "login.submit"))
		h.raw("</form>")
		h.link(routepath.Signup, T(loc, "login.signup_link"))
		h.raw("</section>")
		return h.err
	})
}
