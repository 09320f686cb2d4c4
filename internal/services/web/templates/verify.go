package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// VerifySuccess renders the interstitial shown while the browser waits to
// continue to next.
func VerifySuccess(loc Localizer, next string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"verify verify-success\">")
		h.element("h1", "", T(loc, "verify.success.heading"))
		h.element("p", "", T(loc, "verify.success.body"))
		if next != "" {
			h.element("p", "muted", T(loc, "verify.redirecting"))
			h.link(next, T(loc, "verify.continue"))
		}
		h.raw("</section>")
		return h.err
	})
}

// VerifyFail renders the failure page for a reason key.
func VerifyFail(loc Localizer, reason string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"verify verify-fail\"")
		h.attr("data-reason", reason)
		h.raw(">")
		h.element("h1", "", T(loc, "verify.fail.heading"))
		h.element("p", "", T(loc, "verify.fail.reason."+reason))
		h.link(routepath.Login, T(loc, "verify.fail.back_to_login"))
		h.raw("</section>")
		return h.err
	})
}
