package verification

// Kind selects the verification endpoint and its reason set.
type Kind string

const (
	KindEmail         Kind = "email"
	KindPasswordReset Kind = "password_reset"
	KindInvitation    Kind = "invitation"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindEmail, KindPasswordReset, KindInvitation:
		return true
	default:
		return false
	}
}

// Reason is the closed set of verification failure causes.
type Reason string

const (
	ReasonExpired       Reason = "expired"
	ReasonInvalid       Reason = "invalid"
	ReasonAlready       Reason = "already"
	ReasonEmailMismatch Reason = "email_mismatch"
	ReasonNotVerified   Reason = "not_verified"
	ReasonServer        Reason = "server"
)

// Reasons lists every reason in classification priority order.
var Reasons = []Reason{
	ReasonExpired,
	ReasonInvalid,
	ReasonAlready,
	ReasonEmailMismatch,
	ReasonNotVerified,
	ReasonServer,
}

// ParseReason maps raw onto a known reason, defaulting to server.
func ParseReason(raw string) Reason {
	for _, reason := range Reasons {
		if string(reason) == raw {
			return reason
		}
	}
	return ReasonServer
}

// invitationOnly reports whether reason is reserved for invitation flows.
func (r Reason) invitationOnly() bool {
	return r == ReasonEmailMismatch || r == ReasonNotVerified
}
