package verify

import (
	"context"
	"sync"

	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

// fakeVerifier returns a canned result and records the tokens it saw.
type fakeVerifier struct {
	mu     sync.Mutex
	result verification.Result
	tokens []string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) verification.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return f.result
}

func (f *fakeVerifier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

type fixture struct {
	module      Module
	email       *fakeVerifier
	password    *fakeVerifier
	invitation  *fakeVerifier
	invitations *pendingstore.Slot[pendingstore.PendingInvitation]
	signups     *pendingstore.Slot[pendingstore.PendingSignup]
}

func newFixture(opts ...Option) fixture {
	f := fixture{
		email:       &fakeVerifier{result: verification.Result{OK: true, Status: 200}},
		password:    &fakeVerifier{result: verification.Result{OK: true, Status: 200}},
		invitation:  &fakeVerifier{result: verification.Result{OK: true, Status: 200}},
		invitations: pendingstore.NewInvitationSlot(pendingstore.NewMemory()),
		signups:     pendingstore.NewSignupSlot(pendingstore.NewMemory()),
	}
	base := modulehandler.NewBase(requestmeta.SchemePolicy{}, modulehandler.WithBrowserIDGenerator(func() string { return "browser-new" }))
	all := append([]Option{
		WithBase(base),
		WithVerifier(verification.KindEmail, f.email),
		WithVerifier(verification.KindPasswordReset, f.password),
		WithVerifier(verification.KindInvitation, f.invitation),
		WithInvitationSlot(f.invitations),
		WithSignupSlot(f.signups),
	}, opts...)
	f.module = New(all...)
	return f
}
