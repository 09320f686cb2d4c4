// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/flash"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
	SignedIn   bool
}

// Renderer writes pages inside the shared layout.
type Renderer struct {
	Flash flash.Jar
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// Write renders page. HTMX requests receive the body fragment only; full
// page loads also consume the pending flash notice unless the response
// already queued a new one.
func (rr Renderer) Write(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, lang string, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		layout := webtemplates.Layout(webtemplates.LayoutOptions{
			Title:    page.Title,
			Lang:     lang,
			Loc:      loc,
			Toast:    rr.toast(w, r, loc),
			SignedIn: page.SignedIn,
		})
		if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (rr Renderer) toast(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer) *webtemplates.Toast {
	if flash.Queued(w) {
		return nil
	}
	notice, ok := rr.Flash.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{Kind: string(notice.Kind), Message: message}
}
