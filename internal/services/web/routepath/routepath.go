// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root    = "/"
	Health  = "/up"
	Metrics = "/metrics"

	Login  = "/login"
	Logout = "/logout"

	SignupPrefix = "/signup/"
	Signup       = "/signup"
	SignupEmail  = "/signup/email"
	SignupCancel = "/signup/cancel"

	PasswordPrefix = "/password/"
	PasswordReset  = "/password/reset"

	VerifyPrefix     = "/verify/"
	VerifyEmail      = "/verify/email"
	VerifyPassword   = "/verify/password"
	VerifyInvitation = "/verify/invitation"
	VerifyFail       = "/verify/fail"
	VerifySuccess    = "/verify/success"

	OrgsPrefix         = "/orgs/"
	OrgProjectsPattern = OrgsPrefix + "{orgID}/projects"
	OrgProjectsSuffix  = "/projects"
	LanguageQueryKey   = "lang"
	ReasonQueryKey     = "reason"
	TokenQueryKey      = "token"
	OrgIDQueryKey      = "orgId"
	VerifiedQueryKey   = "verified"
	VerifiedSuccess    = "success"
	NextQueryKey       = "next"
)

// OrgProjects returns the organization project view.
func OrgProjects(orgID int64) string {
	return OrgsPrefix + strconv.FormatInt(orgID, 10) + OrgProjectsSuffix
}

// VerifyFailWithReason returns the verification failure page for reason.
func VerifyFailWithReason(reason string) string {
	return WithQuery(VerifyFail, url.Values{ReasonQueryKey: {strings.TrimSpace(reason)}})
}

// LoginWithNext returns the login page that continues to next after sign-in.
// Only same-site paths are carried.
func LoginWithNext(next string) string {
	next = strings.TrimSpace(next)
	if !IsLocalPath(next) || next == Login {
		return Login
	}
	return WithQuery(Login, url.Values{NextQueryKey: {next}})
}

// WithQuery appends query to path, dropping empty values.
func WithQuery(path string, query url.Values) string {
	clean := url.Values{}
	for key, values := range query {
		for _, value := range values {
			if strings.TrimSpace(value) != "" {
				clean.Add(key, value)
			}
		}
	}
	if len(clean) == 0 {
		return path
	}
	return path + "?" + clean.Encode()
}

// IsLocalPath reports whether raw is an absolute path on this site.
func IsLocalPath(raw string) bool {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}
