// Package webcookie centralizes the cookies the web service sets.
package webcookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
)

// Cookie names.
const (
	SessionName  = "ourhour_session"
	BrowserName  = "ourhour_browser"
	LanguageName = "lang"
)

// Spec describes one cookie. Zero MaxAge means a browser-session cookie.
type Spec struct {
	Name     string
	MaxAge   time.Duration
	HTTPOnly bool
}

// Session holds the opaque session id.
var Session = Spec{Name: SessionName, HTTPOnly: true}

// Browser holds the long-lived browser scope id.
var Browser = Spec{Name: BrowserName, MaxAge: 365 * 24 * time.Hour, HTTPOnly: true}

// Language remembers the chosen locale.
var Language = Spec{Name: LanguageName, MaxAge: 365 * 24 * time.Hour}

// Read returns the trimmed cookie value when present.
func (s Spec) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(s.Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the cookie.
func (s Spec) Write(w http.ResponseWriter, r *http.Request, value string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	cookie := s.base(r, policy)
	cookie.Value = strings.TrimSpace(value)
	if s.MaxAge > 0 {
		cookie.MaxAge = int(s.MaxAge / time.Second)
	}
	http.SetCookie(w, cookie)
}

// Clear expires the cookie.
func (s Spec) Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	cookie := s.base(r, policy)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func (s Spec) base(r *http.Request, policy requestmeta.SchemePolicy) *http.Cookie {
	return &http.Cookie{
		Name:     s.Name,
		Path:     "/",
		HttpOnly: s.HTTPOnly,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
}
