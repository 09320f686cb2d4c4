// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/ourhour/ourhour-web/internal/services/web/platform/errors"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/pagerender"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	return http.StatusText(apperrors.HTTPStatus(err))
}

// Write renders err: an error page for not-found and server failures,
// plain text for everything else.
func Write(w http.ResponseWriter, r *http.Request, renderer pagerender.Renderer, loc webtemplates.Localizer, lang string, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if !ShouldRenderAppError(statusCode) {
		http.Error(w, PublicMessage(loc, err), statusCode)
		return
	}
	page := pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(loc, statusCode),
		StatusCode: statusCode,
		Body:       webtemplates.ErrorState(loc, statusCode),
	}
	if renderErr := renderer.Write(w, r, loc, lang, page); renderErr != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}
