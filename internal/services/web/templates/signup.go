package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// SignupView is the signup continuation state.
type SignupView struct {
	Email    string
	Verified bool
	ErrorKey string
}

// Signup renders the step matching the pending signup: request a
// verification mail, wait for it, or finish the account.
func Signup(loc Localizer, view SignupView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"signup\">")
		h.element("h1", "", T(loc, "signup.title"))
		if view.ErrorKey != "" {
			h.element("p", "error", T(loc, view.ErrorKey))
		}
		switch {
		case view.Email == "":
			h.formOpen(routepath.SignupEmail)
			h.input("email", "email", T(loc, "signup.email"), "")
			h.submit(T(loc, "signup.send"))
			h.raw("</form>")
		case !view.Verified:
			h.element("p", "", T(loc, "signup.sent", view.Email))
		default:
			h.element("p", "", T(loc, "signup.verified", view.Email))
			h.formOpen(routepath.Signup)
			h.input("text", "name", T(loc, "signup.name"), "")
			h.input("password", "password", T(loc, "signup.password"), "")
			h.submit(T(loc, "signup.submit"))
			h.raw("</form>")
		}
		if view.Email != "" {
			h.formOpen(routepath.SignupCancel)
			h.submit(T(loc, "signup.cancel"))
			h.raw("</form>")
		}
		h.raw("</section>")
		return h.err
	})
}
