package verification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
)

func TestControllerInvitationSuccessEndToEnd(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	_, slot := invitationSlotAt(&now)
	store := slot.For("browser")
	verifier := &fakeVerifier{result: Result{OK: true, Status: 200, Message: "ok"}}
	effector := &recordingEffector{}
	scheduler := &manualScheduler{}

	c := NewController(InvitationFlow("abc", 42), verifier, effector,
		WithInvitationStore(store), WithScheduler(scheduler))
	state := c.Activate(context.Background())

	assert.Equal(t, State{Phase: PhaseSucceeded}, state)
	assert.Equal(t, []Notice{{Level: NoticeSuccess, Key: "verify.notice.invitation.success"}}, effector.notices)
	got, ok := store.Read(context.Background())
	require.True(t, ok)
	assert.Equal(t, pendingstore.PendingInvitation{OrgID: 42, Token: "abc", SavedAt: now.UnixMilli()}, got)

	assert.Empty(t, effector.navigated(), "navigation waits for the delay")
	assert.Equal(t, 1500*time.Millisecond, scheduler.delay)
	scheduler.fire()
	assert.Equal(t, []string{"/login?token=abc&verified=success"}, effector.navigated())
}

func TestControllerWithoutTokenFailsWithoutCall(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{}
	effector := &recordingEffector{}
	c := NewController(EmailFlow("  "), verifier, effector)

	state := c.Activate(context.Background())
	assert.Equal(t, State{Phase: PhaseFailed, Reason: ReasonInvalid}, state)
	assert.Zero(t, verifier.calls())
	assert.Equal(t, []string{"/verify/fail?reason=invalid"}, effector.navigated())
}

func TestControllerReactivationIsNoop(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{result: Result{Status: 400, Reason: ReasonInvalid}}
	effector := &recordingEffector{}
	c := NewController(EmailFlow("tok"), verifier, effector)

	first := c.Activate(context.Background())
	second := c.Activate(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, verifier.calls())
	assert.Len(t, effector.navigated(), 1)
}

func TestControllerConcurrentActivationCallsOnce(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{result: Result{OK: true, Status: 200}}
	effector := &delayedEffector{}
	c := NewController(PasswordResetFlow("tok"), verifier, effector)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Activate(context.Background())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, verifier.calls())
}

func TestControllerCloseCancelsDelayedNavigation(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{result: Result{OK: true, Status: 200}}
	effector := &recordingEffector{}
	scheduler := &manualScheduler{}
	c := NewController(PasswordResetFlow("tok"), verifier, effector, WithScheduler(scheduler))

	c.Activate(context.Background())
	c.Close()
	scheduler.fire()

	assert.True(t, scheduler.timer.stopped)
	assert.Empty(t, effector.navigated())
}

func TestControllerDelegatesDelayedNavigation(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{result: Result{OK: true, Status: 200}}
	effector := &delayedEffector{}
	scheduler := &manualScheduler{}
	c := NewController(PasswordResetFlow("tok"), verifier, effector, WithScheduler(scheduler))

	c.Activate(context.Background())
	assert.Equal(t, "/password/reset?token=tok", effector.target)
	assert.Equal(t, DefaultRedirectDelay, effector.delay)
	assert.Nil(t, scheduler.fn, "no timer when the effector carries the delay")
}

func TestControllerEmailSuccessPersistsSignup(t *testing.T) {
	t.Parallel()

	signups := pendingstore.NewSignupSlot(pendingstore.NewMemory()).For("b")
	verifier := &fakeVerifier{result: Result{OK: true, Status: 200, Email: "a@b.c"}}
	c := NewController(EmailFlow("tok"), verifier, &delayedEffector{}, WithSignupStore(signups))

	c.Activate(context.Background())
	got, ok := signups.Read(context.Background())
	require.True(t, ok)
	assert.Equal(t, pendingstore.PendingSignup{Email: "a@b.c", IsVerified: true}, got)
}

func TestControllerEmailSuccessMarksPendingSignupWithoutEcho(t *testing.T) {
	t.Parallel()

	signups := pendingstore.NewSignupSlot(pendingstore.NewMemory()).For("b")
	signups.Save(context.Background(), pendingstore.PendingSignup{Email: "a@b.c"})
	verifier := &fakeVerifier{result: Result{OK: true, Status: 200}}
	c := NewController(EmailFlow("tok"), verifier, &delayedEffector{}, WithSignupStore(signups))

	assert.Equal(t, State{Phase: PhaseSucceeded}, c.Activate(context.Background()))
	got, ok := signups.Read(context.Background())
	require.True(t, ok)
	assert.Equal(t, pendingstore.PendingSignup{Email: "a@b.c", IsVerified: true}, got)
}

func TestControllerEmailSuccessWithoutAnyEmailStoresNothing(t *testing.T) {
	t.Parallel()

	signups := pendingstore.NewSignupSlot(pendingstore.NewMemory()).For("b")
	verifier := &fakeVerifier{result: Result{OK: true, Status: 200}}
	c := NewController(EmailFlow("tok"), verifier, &delayedEffector{}, WithSignupStore(signups))

	c.Activate(context.Background())
	_, ok := signups.Read(context.Background())
	assert.False(t, ok)
}

func TestControllerRealSchedulerFires(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{result: Result{OK: true, Status: 200}}
	effector := &recordingEffector{}
	flow := PasswordResetFlow("tok")
	flow.Delay = time.Millisecond
	c := NewController(flow, verifier, effector)

	c.Activate(context.Background())
	assert.Eventually(t, func() bool { return len(effector.navigated()) == 1 }, time.Second, 5*time.Millisecond)
}
