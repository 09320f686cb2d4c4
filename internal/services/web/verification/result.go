package verification

// DefaultSuccessMessage is used when the backend omits one.
const DefaultSuccessMessage = "Verification completed."

// Result is the outcome of one verification call.
//
// When OK is false, Reason is set. Status is 0 when the backend was not
// reached.
type Result struct {
	OK      bool
	Status  int
	Reason  Reason
	Message string

	// OrgID and Email echo the backend data payload when present.
	OrgID int64
	Email string
}

// Succeeded reports whether the result counts as a verified token. A 2xx
// other than 200 does not.
func (r Result) Succeeded() bool {
	return r.OK && r.Status == 200
}

// FailureReason is the reason a non-succeeded result navigates with.
func (r Result) FailureReason() Reason {
	if r.OK || r.Reason == "" {
		return ReasonServer
	}
	return r.Reason
}
