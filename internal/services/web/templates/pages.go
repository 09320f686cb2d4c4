package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// PasswordReset renders the reset continuation for a confirmed token.
func PasswordReset(loc Localizer, token string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"password-reset\">")
		h.element("h1", "", T(loc, "password.reset.title"))
		if token == "" {
			h.element("p", "error", T(loc, "password.reset.missing_token"))
		} else {
			h.raw("<p")
			h.attr("data-token", token)
			h.raw(">")
			h.text(T(loc, "password.reset.body"))
			h.raw("</p>")
		}
		h.raw("</section>")
		return h.err
	})
}

// OrgProjects renders the organization project view.
func OrgProjects(loc Localizer, orgID int64) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"projects\">")
		h.element("h1", "", T(loc, "orgs.projects.title"))
		h.element("p", "", T(loc, "orgs.projects.body", orgID))
		h.raw("</section>")
		return h.err
	})
}

// ErrorPageTitle returns the title key for an error page.
func ErrorPageTitle(loc Localizer, status int) string {
	if status == http.StatusNotFound {
		return T(loc, "error.not_found.heading")
	}
	return T(loc, "error.title")
}

// ErrorState renders the body of an error page. Statuses other than 404
// render as server errors.
func ErrorState(loc Localizer, status int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		heading, body := "error.server.heading", "error.server.body"
		if status == http.StatusNotFound {
			heading, body = "error.not_found.heading", "error.not_found.body"
		}
		h := &htmlWriter{w: w}
		h.raw("<section class=\"error\">")
		h.element("h1", "", T(loc, heading))
		h.element("p", "", T(loc, body))
		h.link(routepath.Root, T(loc, "error.back_home"))
		h.raw("</section>")
		return h.err
	})
}

// Home renders the signed-in landing page.
func Home(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"home\">")
		h.element("h1", "", T(loc, "home.title"))
		h.element("p", "", T(loc, "home.body"))
		h.raw("</section>")
		return h.err
	})
}
