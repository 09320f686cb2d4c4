package verification

import (
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// codeReasons maps stable backend error codes onto reasons.
var codeReasons = map[string]Reason{
	"TOKEN_EXPIRED":               ReasonExpired,
	"EXPIRED_TOKEN":               ReasonExpired,
	"VERIFICATION_EXPIRED":        ReasonExpired,
	"INVITATION_EXPIRED":          ReasonExpired,
	"TOKEN_INVALID":               ReasonInvalid,
	"INVALID_TOKEN":               ReasonInvalid,
	"INVITATION_NOT_FOUND":        ReasonInvalid,
	"ALREADY_VERIFIED":            ReasonAlready,
	"ALREADY_ACCEPTED":            ReasonAlready,
	"ALREADY_MEMBER":              ReasonAlready,
	"EMAIL_MISMATCH":              ReasonEmailMismatch,
	"INVITATION_EMAIL_MISMATCH":   ReasonEmailMismatch,
	"EMAIL_NOT_VERIFIED":          ReasonNotVerified,
	"NOT_VERIFIED":                ReasonNotVerified,
	"INVITATION_EMAIL_UNVERIFIED": ReasonNotVerified,
}

// Message patterns, matched against folded text. Korean first, English after.
var (
	expiredPatterns       = []string{"만료", "expired", "expiration"}
	invalidPatterns       = []string{"유효하지 않", "잘못된", "존재하지 않", "invalid", "not found"}
	alreadyPatterns       = []string{"이미 ", "이미인증", "이미사용", "이미수락", "이미가입", "already"}
	emailMismatchPatterns = []string{"일치하지 않", "다른 이메일", "mismatch", "does not match"}
	notVerifiedPatterns   = []string{"인증되지 않", "인증이 필요", "미인증", "not verified", "unverified"}
)

// Classify derives the failure reason for a rejected verification.
//
// A recognised code wins. Otherwise the message is matched in order:
// expired wording, then HTTP 400 or invalid wording, then already-verified
// wording, then (invitations only) email-mismatch and not-verified wording.
// Anything else, including an unreachable backend, is server. The message
// path is best effort and not a protocol guarantee.
func Classify(kind Kind, status int, code, message string) Reason {
	if reason, ok := classifyCode(kind, code); ok {
		return reason
	}

	text := foldText(message)
	switch {
	case containsAny(text, expiredPatterns):
		return ReasonExpired
	case status == http.StatusBadRequest || containsAny(text, invalidPatterns):
		return ReasonInvalid
	case containsAny(text, alreadyPatterns):
		return ReasonAlready
	}
	if kind == KindInvitation {
		switch {
		case containsAny(text, emailMismatchPatterns):
			return ReasonEmailMismatch
		case containsAny(text, notVerifiedPatterns):
			return ReasonNotVerified
		}
	}
	return ReasonServer
}

func classifyCode(kind Kind, code string) (Reason, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}
	code = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(code)
	reason, ok := codeReasons[code]
	if !ok {
		reason = ParseReason(strings.ToLower(code))
		ok = reason != ReasonServer || strings.EqualFold(code, string(ReasonServer))
	}
	if !ok {
		return "", false
	}
	if reason.invitationOnly() && kind != KindInvitation {
		return "", false
	}
	return reason, true
}

func foldText(message string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(message)))
}

func containsAny(text string, patterns []string) bool {
	if text == "" {
		return false
	}
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}
