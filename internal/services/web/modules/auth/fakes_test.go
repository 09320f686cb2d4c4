package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/navigator"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/webcookie"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

type fakeSignIn struct {
	tokens backend.Tokens
	err    error
	emails []string
}

func (f *fakeSignIn) SignIn(_ context.Context, email, _ string) (backend.Tokens, error) {
	f.emails = append(f.emails, email)
	return f.tokens, f.err
}

type fakeSignOut struct{ calls int }

func (f *fakeSignOut) SignOut(context.Context) error {
	f.calls++
	return nil
}

// fakeSessions keeps records in memory keyed by id.
type fakeSessions struct {
	mu        sync.Mutex
	records   map[string]session.Record
	createErr error
	nextID    string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{records: map[string]session.Record{}, nextID: "sid-new"}
}

func (f *fakeSessions) Create(_ context.Context, tokens backend.Tokens) (session.Record, error) {
	if f.createErr != nil {
		return session.Record{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := session.Record{ID: f.nextID, UserID: "user-1", AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeSessions) Resolve(r *http.Request) (session.Record, bool) {
	id, ok := webcookie.Session.Read(r)
	if !ok {
		return session.Record{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	return rec, ok
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeSessions) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[id]
	return ok
}

// fakeAccepter navigates to target when set, recording the scope and
// session it ran for.
type fakeAccepter struct {
	target   string
	notice   *verification.Notice
	scopes   []string
	sessions []string
}

func (f *fakeAccepter) Run(ctx context.Context, _ *zap.Logger, scope, sessionID string) *navigator.Recorder {
	f.scopes = append(f.scopes, scope)
	f.sessions = append(f.sessions, sessionID)
	rec := navigator.NewRecorder()
	if f.notice != nil {
		rec.Notify(ctx, *f.notice)
	}
	if f.target != "" {
		rec.Navigate(ctx, f.target)
	}
	return rec
}

var errBackendDown = errors.New("dial tcp: connection refused")

type fixture struct {
	module   Module
	signIn   *fakeSignIn
	signOut  *fakeSignOut
	sessions *fakeSessions
	accepter *fakeAccepter
}

func newFixture() fixture {
	f := fixture{
		signIn:   &fakeSignIn{tokens: backend.Tokens{AccessToken: "a", RefreshToken: "r"}},
		signOut:  &fakeSignOut{},
		sessions: newFakeSessions(),
		accepter: &fakeAccepter{},
	}
	f.module = New(
		WithBase(modulehandler.NewBase(requestmeta.SchemePolicy{}, modulehandler.WithBrowserIDGenerator(func() string { return "browser-new" }))),
		WithSignIn(f.signIn),
		WithSignOut(func(string) SignOutClient { return f.signOut }),
		WithSessions(f.sessions),
		WithAccepter(f.accepter),
	)
	return f
}
