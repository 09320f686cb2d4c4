// Package requestmeta resolves request scheme, origin, and client address
// under an explicit proxy trust policy.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls which proxy headers are believed.
//
// Forwarded headers are ignored unless TrustForwarded is set, since any client
// can send them.
type SchemePolicy struct {
	TrustForwarded bool
}

// IsHTTPS reports whether r should be treated as HTTPS under policy.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return scheme(r, policy) == "https"
}

// ClientIP returns the caller address. With TrustForwarded, the first
// X-Forwarded-For entry wins.
func ClientIP(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwarded {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// IsSameOrigin reports whether Origin, or failing that Referer, names the
// request's own scheme, host and port. Requests carrying neither fail.
func IsSameOrigin(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	reqScheme := scheme(r, policy)
	reqHost, reqPort := hostParts(r.Host)
	if reqHost == "" && r.URL != nil {
		reqHost, reqPort = hostParts(r.URL.Host)
	}
	if reqHost == "" {
		return false
	}
	if reqPort == "" {
		reqPort = defaultPort(reqScheme)
	}

	source := strings.TrimSpace(r.Header.Get("Origin"))
	if source == "" {
		source = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if source == "" {
		return false
	}
	parsed, err := url.Parse(source)
	if err != nil {
		return false
	}
	srcScheme := strings.ToLower(parsed.Scheme)
	if srcScheme == "" || srcScheme != reqScheme {
		return false
	}
	srcHost := strings.ToLower(parsed.Hostname())
	srcPort := parsed.Port()
	if srcPort == "" {
		srcPort = defaultPort(srcScheme)
	}
	return srcHost == reqHost && srcPort != "" && srcPort == reqPort
}

func scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwarded {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if s := strings.ToLower(r.URL.Scheme); s == "http" || s == "https" {
			return s
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

func hostParts(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
