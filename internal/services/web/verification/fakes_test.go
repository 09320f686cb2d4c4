package verification

import (
	"context"
	"sync"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
)

type fakeVerifier struct {
	mu     sync.Mutex
	result Result
	tokens []string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) Result {
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

type recordingEffector struct {
	mu          sync.Mutex
	notices     []Notice
	navigations []string
}

func (r *recordingEffector) Notify(_ context.Context, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recordingEffector) Navigate(_ context.Context, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigations = append(r.navigations, target)
}

func (r *recordingEffector) navigated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.navigations...)
}

type delayedEffector struct {
	recordingEffector
	target string
	delay  time.Duration
}

func (d *delayedEffector) NavigateAfter(_ context.Context, target string, delay time.Duration) {
	d.target = target
	d.delay = delay
}

type manualTimer struct {
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	delay time.Duration
	fn    func()
	timer *manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.delay = d
	s.fn = f
	s.timer = &manualTimer{}
	return s.timer
}

func (s *manualScheduler) fire() {
	if s.fn != nil && !s.timer.stopped {
		s.fn()
	}
}

type fakeAccepter struct {
	calls []string
	resp  backend.Response
	err   error
}

func (f *fakeAccepter) AcceptInvitation(_ context.Context, token string) (backend.Response, error) {
	f.calls = append(f.calls, token)
	return f.resp, f.err
}

type fakeTokenVerifier struct {
	path  string
	token string
	resp  backend.Response
	err   error
}

func (f *fakeTokenVerifier) VerifyToken(_ context.Context, path, token string) (backend.Response, error) {
	f.path = path
	f.token = token
	return f.resp, f.err
}

type countingObserver struct {
	verifications []Result
	accepts       []bool
}

func (c *countingObserver) VerificationFinished(_ Kind, result Result) {
	c.verifications = append(c.verifications, result)
}

func (c *countingObserver) AcceptFinished(ok bool) { c.accepts = append(c.accepts, ok) }

func invitationSlotAt(now *time.Time) (*pendingstore.Memory, *pendingstore.Slot[pendingstore.PendingInvitation]) {
	mem := pendingstore.NewMemory()
	return mem, pendingstore.NewInvitationSlot(mem, pendingstore.WithClock(func() time.Time { return *now }))
}
