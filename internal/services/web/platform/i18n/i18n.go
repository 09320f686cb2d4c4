// Package i18n resolves the request language and localizes copy from the
// message catalog registered by this package.
package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/webcookie"
)

// LangParam selects a language for the request and persists it.
const LangParam = "lang"

var (
	English = language.AmericanEnglish
	Korean  = language.MustParse("ko-KR")

	supported = []language.Tag{English, Korean}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the supported tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the fallback tag.
func Default() language.Tag { return English }

// ParseTag maps raw onto a supported tag.
func ParseTag(raw string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Default(), false
	}
	return match(tag)
}

func match(tags ...language.Tag) (language.Tag, bool) {
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default(), false
	}
	return supported[idx], true
}

// ResolveTag picks the request language from the lang query, the lang cookie,
// then Accept-Language. The bool reports whether the query chose it, in which
// case the caller should persist the choice.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if raw := r.URL.Query().Get(LangParam); raw != "" {
		if tag, ok := ParseTag(raw); ok {
			return tag, true
		}
	}
	if raw, ok := webcookie.Language.Read(r); ok {
		if tag, ok := ParseTag(raw); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if tag, ok := match(tags...); ok {
				return tag, false
			}
		}
	}
	return Default(), false
}

// FromRequest resolves the localizer for r and persists an explicit choice.
func FromRequest(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) *Localizer {
	tag, persist := ResolveTag(r)
	if persist {
		webcookie.Language.Write(w, r, tag.String(), policy)
	}
	return New(tag)
}

// Localizer renders catalog keys for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a localizer for tag.
func New(tag language.Tag) *Localizer {
	tag, _ = match(tag)
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the localizer language.
func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return Default()
	}
	return l.tag
}

// Lang returns the BCP 47 tag for the html lang attribute.
func (l *Localizer) Lang() string { return l.Tag().String() }

// T localizes key. Keys missing from the catalog fall back to English, then
// to the key itself.
func (l *Localizer) T(key string, args ...any) string {
	if l != nil {
		if value := l.printer.Sprintf(key, args...); !missing(value, key, args) {
			return value
		}
	}
	if value := message.NewPrinter(English).Sprintf(key, args...); !missing(value, key, args) {
		return value
	}
	return key
}

// Sprintf localizes a catalog reference. String keys follow T.
func (l *Localizer) Sprintf(key message.Reference, args ...any) string {
	if keyString, ok := key.(string); ok {
		return l.T(keyString, args...)
	}
	if l != nil {
		return l.printer.Sprintf(key, args...)
	}
	return message.NewPrinter(English).Sprintf(key, args...)
}

func missing(value, key string, args []any) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == key || value == fmt.Sprintf(key, args...)
}
