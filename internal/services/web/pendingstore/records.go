package pendingstore

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	// InvitationKey is the storage key of the pending invitation slot.
	InvitationKey = "pendingInvitation"
	// SignupKey is the storage key of the pending signup slot.
	SignupKey = "pendingSignup"
	// InvitationTTL bounds how long a verified invitation waits for login.
	InvitationTTL = 15 * time.Minute
)

var errMissingField = errors.New("pending record is missing a required field")

// PendingInvitation is an invitation whose token was verified before the
// user authenticated.
type PendingInvitation struct {
	OrgID   int64  `json:"orgId"`
	Token   string `json:"token"`
	SavedAt int64  `json:"savedAt"`
}

// SavedTime returns SavedAt as a time.
func (p PendingInvitation) SavedTime() time.Time {
	return time.UnixMilli(p.SavedAt)
}

type invitationWire struct {
	OrgID   *int64  `json:"orgId"`
	Token   *string `json:"token"`
	SavedAt *int64  `json:"savedAt"`
}

func decodeInvitation(raw []byte) (PendingInvitation, error) {
	var wire invitationWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return PendingInvitation{}, err
	}
	if wire.OrgID == nil || wire.Token == nil || wire.SavedAt == nil || strings.TrimSpace(*wire.Token) == "" {
		return PendingInvitation{}, errMissingField
	}
	return PendingInvitation{OrgID: *wire.OrgID, Token: *wire.Token, SavedAt: *wire.SavedAt}, nil
}

// PendingSignup is a signup waiting for the user to finish the form.
type PendingSignup struct {
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

type signupWire struct {
	Email      *string `json:"email"`
	IsVerified *bool   `json:"isVerified"`
}

func decodeSignup(raw []byte) (PendingSignup, error) {
	var wire signupWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return PendingSignup{}, err
	}
	if wire.Email == nil || wire.IsVerified == nil || strings.TrimSpace(*wire.Email) == "" {
		return PendingSignup{}, errMissingField
	}
	return PendingSignup{Email: *wire.Email, IsVerified: *wire.IsVerified}, nil
}
