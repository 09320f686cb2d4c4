package verification

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// DefaultRedirectDelay is how long the success page stays before moving on.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Phase is the controller lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// State is the controller state. Reason is set only in PhaseFailed.
type State struct {
	Phase  Phase
	Reason Reason
}

// Event drives Step.
type Event interface{ isEvent() }

// Activated is delivered when the verification page is opened.
type Activated struct {
	TokenPresent bool
}

// Completed carries the requester result.
type Completed struct {
	Result Result
}

func (Activated) isEvent() {}
func (Completed) isEvent() {}

// Effect is work Step asks the runtime to perform, in order.
type Effect interface{ isEffect() }

// CallVerify asks for one verification call with the flow token.
type CallVerify struct{}

// Notify shows a one-shot notice.
type Notify struct {
	Notice Notice
}

// PersistInvitation stores the verified invitation for the post-login accept.
type PersistInvitation struct {
	OrgID int64
	Token string
}

// PersistSignup marks the browser's signup as verified. An empty Email keeps
// the address already pending.
type PersistSignup struct {
	Email string
}

// Navigate moves the user to Target, after Delay when positive.
type Navigate struct {
	Target string
	Delay  time.Duration
}

func (CallVerify) isEffect()        {}
func (Notify) isEffect()            {}
func (PersistInvitation) isEffect() {}
func (PersistSignup) isEffect()     {}
func (Navigate) isEffect()          {}

// NoticeLevel is the notice severity.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a localizable one-shot message.
type Notice struct {
	Level NoticeLevel
	Key   string
}

// Flow describes one verification page: which endpoint, which token, and
// where success leads.
type Flow struct {
	Kind  Kind
	Token string
	// OrgID comes from the invitation link; zero means use the backend's.
	OrgID int64
	Delay time.Duration
}

// EmailFlow verifies a signup email.
func EmailFlow(token string) Flow {
	return Flow{Kind: KindEmail, Token: token}
}

// PasswordResetFlow verifies a password reset link.
func PasswordResetFlow(token string) Flow {
	return Flow{Kind: KindPasswordReset, Token: token}
}

// InvitationFlow verifies an organization invitation.
func InvitationFlow(token string, orgID int64) Flow {
	return Flow{Kind: KindInvitation, Token: token, OrgID: orgID}
}

// HasToken reports whether the flow carries a non-blank token.
func (f Flow) HasToken() bool {
	return strings.TrimSpace(f.Token) != ""
}

func (f Flow) delay() time.Duration {
	if f.Delay > 0 {
		return f.Delay
	}
	return DefaultRedirectDelay
}

// SuccessTarget is where the flow goes after a verified token.
func (f Flow) SuccessTarget() string {
	switch f.Kind {
	case KindInvitation:
		return routepath.WithQuery(routepath.Login, url.Values{
			routepath.TokenQueryKey:    {f.Token},
			routepath.VerifiedQueryKey: {routepath.VerifiedSuccess},
		})
	case KindPasswordReset:
		return routepath.WithQuery(routepath.PasswordReset, url.Values{
			routepath.TokenQueryKey: {f.Token},
		})
	case KindEmail:
		return routepath.WithQuery(routepath.Signup, url.Values{
			routepath.VerifiedQueryKey: {routepath.VerifiedSuccess},
		})
	default:
		return routepath.VerifySuccess
	}
}

// SuccessNoticeKey is the localization key of the success notice.
func (f Flow) SuccessNoticeKey() string {
	return "verify.notice." + string(f.Kind) + ".success"
}

// Step advances state by event and returns the effects to run. Events that
// do not apply to the current phase leave it unchanged with no effects; this
// is what makes re-activation after the first run a no-op.
func Step(flow Flow, state State, event Event) (State, []Effect) {
	switch ev := event.(type) {
	case Activated:
		if state.Phase != PhaseIdle {
			return state, nil
		}
		if !ev.TokenPresent {
			return fail(ReasonInvalid)
		}
		return State{Phase: PhaseRunning}, []Effect{CallVerify{}}

	case Completed:
		if state.Phase != PhaseRunning {
			return state, nil
		}
		if !ev.Result.Succeeded() {
			return fail(ev.Result.FailureReason())
		}
		return succeed(flow, ev.Result)
	}
	return state, nil
}

func fail(reason Reason) (State, []Effect) {
	return State{Phase: PhaseFailed, Reason: reason},
		[]Effect{Navigate{Target: routepath.VerifyFailWithReason(string(reason))}}
}

// succeed is only reached for a verified token. An invitation whose
// organization is known neither from the link nor from the backend fails as
// server, since there is nothing to join after login.
func succeed(flow Flow, result Result) (State, []Effect) {
	effects := []Effect{Notify{Notice: Notice{Level: NoticeSuccess, Key: flow.SuccessNoticeKey()}}}
	switch flow.Kind {
	case KindInvitation:
		orgID := flow.OrgID
		if orgID <= 0 {
			orgID = result.OrgID
		}
		if orgID <= 0 {
			return fail(ReasonServer)
		}
		effects = append(effects, PersistInvitation{OrgID: orgID, Token: flow.Token})
	case KindEmail:
		effects = append(effects, PersistSignup{Email: result.Email})
	}
	return State{Phase: PhaseSucceeded}, append(effects, Navigate{Target: flow.SuccessTarget(), Delay: flow.delay()})
}
