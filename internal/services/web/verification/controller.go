package verification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
)

// Effector performs the user-visible side effects of a flow.
type Effector interface {
	Notify(ctx context.Context, notice Notice)
	Navigate(ctx context.Context, target string)
}

// DelayedNavigator is implemented by effectors that can carry a delayed
// navigation themselves, such as an HTTP response with a refresh header.
// Controllers hand delayed navigations to it instead of arming a timer.
type DelayedNavigator interface {
	NavigateAfter(ctx context.Context, target string, delay time.Duration)
}

// InvitationStore is the pending invitation slot bound to one browser.
type InvitationStore interface {
	Save(ctx context.Context, record pendingstore.PendingInvitation)
	Read(ctx context.Context) (pendingstore.PendingInvitation, bool)
	Clear(ctx context.Context)
}

// SignupStore is the pending signup slot bound to one browser.
type SignupStore interface {
	Save(ctx context.Context, record pendingstore.PendingSignup)
	Read(ctx context.Context) (pendingstore.PendingSignup, bool)
}

// Controller drives one flow to completion, once.
type Controller struct {
	flow        Flow
	verifier    Verifier
	effector    Effector
	invitations InvitationStore
	signups     SignupStore
	scheduler   Scheduler
	logger      *zap.Logger

	mu     sync.Mutex
	state  State
	timer  Timer
	closed bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithInvitationStore sets where verified invitations are persisted.
func WithInvitationStore(store InvitationStore) ControllerOption {
	return func(c *Controller) { c.invitations = store }
}

// WithSignupStore sets where verified signup emails are persisted.
func WithSignupStore(store SignupStore) ControllerOption {
	return func(c *Controller) { c.signups = store }
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(scheduler Scheduler) ControllerOption {
	return func(c *Controller) {
		if scheduler != nil {
			c.scheduler = scheduler
		}
	}
}

// WithControllerLogger sets the controller logger.
func WithControllerLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController builds an idle controller.
func NewController(flow Flow, verifier Verifier, effector Effector, opts ...ControllerOption) *Controller {
	c := &Controller{
		flow:      flow,
		verifier:  verifier,
		effector:  effector,
		scheduler: realScheduler{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Activate runs the flow. Only the first call does anything; later calls,
// concurrent or not, return the current state.
func (c *Controller) Activate(ctx context.Context) State {
	effects := c.dispatch(Activated{TokenPresent: c.flow.HasToken()})
	for len(effects) > 0 {
		var next []Effect
		for _, effect := range effects {
			next = append(next, c.run(ctx, effect)...)
		}
		effects = next
	}
	return c.State()
}

// Close cancels a pending delayed navigation. A closed controller performs
// no further navigation.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) dispatch(event Event) []Effect {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	next, effects := Step(c.flow, c.state, event)
	if next.Phase != c.state.Phase {
		c.logger.Debug("verification transition",
			zap.String("kind", string(c.flow.Kind)),
			zap.Stringer("from", c.state.Phase),
			zap.Stringer("to", next.Phase),
			zap.String("reason", string(next.Reason)),
		)
	}
	c.state = next
	return effects
}

// run executes one effect and returns the effects produced by any event it
// triggers.
func (c *Controller) run(ctx context.Context, effect Effect) []Effect {
	switch e := effect.(type) {
	case CallVerify:
		result := c.verifier.Verify(ctx, c.flow.Token)
		return c.dispatch(Completed{Result: result})
	case Notify:
		c.effector.Notify(ctx, e.Notice)
	case PersistInvitation:
		if c.invitations != nil {
			c.invitations.Save(ctx, pendingstore.PendingInvitation{OrgID: e.OrgID, Token: e.Token})
		}
	case PersistSignup:
		c.markSignupVerified(ctx, e.Email)
	case Navigate:
		c.navigate(ctx, e)
	}
	return nil
}

func (c *Controller) markSignupVerified(ctx context.Context, email string) {
	if c.signups == nil {
		return
	}
	if email == "" {
		pending, ok := c.signups.Read(ctx)
		if !ok || pending.Email == "" {
			c.logger.Debug("verified signup has no pending email")
			return
		}
		email = pending.Email
	}
	c.signups.Save(ctx, pendingstore.PendingSignup{Email: email, IsVerified: true})
}

func (c *Controller) navigate(ctx context.Context, nav Navigate) {
	if nav.Delay <= 0 {
		c.effector.Navigate(ctx, nav.Target)
		return
	}
	if delayed, ok := c.effector.(DelayedNavigator); ok {
		delayed.NavigateAfter(ctx, nav.Target, nav.Delay)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	navCtx := context.WithoutCancel(ctx)
	c.timer = c.scheduler.AfterFunc(nav.Delay, func() {
		c.mu.Lock()
		fire := !c.closed
		c.timer = nil
		c.mu.Unlock()
		if fire {
			c.effector.Navigate(navCtx, nav.Target)
		}
	})
}
