package modules

import (
	"github.com/ourhour/ourhour-web/internal/services/web/modules/auth"
	"github.com/ourhour/ourhour-web/internal/services/web/modules/orgs"
	"github.com/ourhour/ourhour-web/internal/services/web/modules/password"
	"github.com/ourhour/ourhour-web/internal/services/web/modules/signup"
	"github.com/ourhour/ourhour-web/internal/services/web/modules/verify"
)

// Registry builds the default module sets.
type Registry struct{}

// NewRegistry returns the default registry.
func NewRegistry() Registry { return Registry{} }

// Build returns public and protected modules wired to deps.
func (Registry) Build(deps Dependencies) BuildOutput {
	return BuildOutput{
		Public:    DefaultPublicModules(deps),
		Protected: DefaultProtectedModules(deps),
	}
}

// DefaultPublicModules returns modules reachable without a session.
func DefaultPublicModules(deps Dependencies) []Module {
	verifyOpts := []verify.Option{
		verify.WithBase(deps.Base),
		verify.WithInvitationSlot(deps.Invitations),
		verify.WithSignupSlot(deps.Signups),
		verify.WithRateLimiter(deps.VerifyLimiter),
		verify.WithRedirectDelay(deps.RedirectDelay),
	}
	for kind, verifier := range deps.Verifiers {
		verifyOpts = append(verifyOpts, verify.WithVerifier(kind, verifier))
	}

	authOpts := []auth.Option{auth.WithBase(deps.Base)}
	if deps.Backend != nil {
		authOpts = append(authOpts, auth.WithSignIn(deps.Backend))
	}
	if deps.Sessions != nil {
		authOpts = append(authOpts, auth.WithSessions(deps.Sessions))
		if deps.Backend != nil {
			authOpts = append(authOpts, auth.WithSignOut(func(sessionID string) auth.SignOutClient {
				return deps.Backend.Authenticated(deps.Sessions.Tokens(sessionID, deps.Backend))
			}))
		}
	}
	if deps.Accepter != nil {
		authOpts = append(authOpts, auth.WithAccepter(deps.Accepter))
	}

	signupOpts := []signup.Option{signup.WithBase(deps.Base), signup.WithSlot(deps.Signups)}
	if deps.Backend != nil {
		signupOpts = append(signupOpts, signup.WithClient(deps.Backend))
	}

	return []Module{
		verify.New(verifyOpts...),
		auth.New(authOpts...),
		signup.New(signupOpts...),
		password.New(deps.Base),
	}
}

// DefaultProtectedModules returns modules that require a session.
func DefaultProtectedModules(deps Dependencies) []Module {
	var sessions orgs.SessionResolver
	if deps.Sessions != nil {
		sessions = deps.Sessions
	}
	var accepter orgs.Accepter
	if deps.Accepter != nil {
		accepter = deps.Accepter
	}
	return []Module{orgs.New(deps.Base, sessions, accepter)}
}
