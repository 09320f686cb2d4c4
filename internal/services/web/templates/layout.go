package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// Toast is a rendered flash notice.
type Toast struct {
	Kind    string
	Message string
}

// LayoutOptions configures the page shell.
type LayoutOptions struct {
	Title    string
	Lang     string
	Loc      Localizer
	Toast    *Toast
	SignedIn bool
}

// Layout renders the document shell around the context children.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		appName := T(opts.Loc, "app.name")
		title := appName
		if t := strings.TrimSpace(opts.Title); t != "" {
			title = T(opts.Loc, "app.title", t)
		}
		lang := opts.Lang
		if lang == "" {
			lang = "en-US"
		}

		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(title)
		h.raw("</title></head><body><header>")
		h.element("strong", "brand", appName)
		if opts.SignedIn {
			h.formOpen(routepath.Logout)
			h.submit(T(opts.Loc, "auth.sign_out"))
			h.raw("</form>")
		}
		h.raw("</header>")
		if opts.Toast != nil && opts.Toast.Message != "" {
			h.raw("<div role=\"status\"")
			h.attr("class", "toast toast-"+opts.Toast.Kind)
			h.raw(">")
			h.text(opts.Toast.Message)
			h.raw("</div>")
		}
		h.raw("<main>")
		if h.err != nil {
			return h.err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main></body></html>")
		return h.err
	})
}
