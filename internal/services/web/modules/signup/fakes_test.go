package signup

import (
	"context"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
)

type fakeClient struct {
	sendErr   error
	signupErr error
	sent      []string
	signups   []backend.SignupRequest
}

func (f *fakeClient) SendSignupVerification(_ context.Context, email string) error {
	f.sent = append(f.sent, email)
	return f.sendErr
}

func (f *fakeClient) SignUp(_ context.Context, req backend.SignupRequest) error {
	f.signups = append(f.signups, req)
	return f.signupErr
}

type fixture struct {
	module Module
	client *fakeClient
	slot   *pendingstore.Slot[pendingstore.PendingSignup]
}

func newFixture() fixture {
	f := fixture{
		client: &fakeClient{},
		slot:   pendingstore.NewSignupSlot(pendingstore.NewMemory()),
	}
	f.module = New(
		WithBase(modulehandler.NewBase(requestmeta.SchemePolicy{})),
		WithClient(f.client),
		WithSlot(f.slot),
	)
	return f
}
