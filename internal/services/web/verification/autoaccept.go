package verification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// Notice keys used by the coordinator.
const (
	NoticeKeyAcceptSuccess = "verify.notice.invitation.accepted"
	NoticeKeyAcceptFailed  = "verify.notice.invitation.accept_failed"
)

// InvitationAccepter accepts an invitation for the signed-in user.
type InvitationAccepter interface {
	AcceptInvitation(ctx context.Context, token string) (backend.Response, error)
}

// Coordinator accepts a pending invitation once the user is authenticated.
// It acts at most once over its lifetime.
type Coordinator struct {
	store    InvitationStore
	accepter InvitationAccepter
	effector Effector
	logger   *zap.Logger
	observer Observer

	once sync.Once
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithCoordinatorLogger sets the coordinator logger.
func WithCoordinatorLogger(logger *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCoordinatorObserver reports accept outcomes to observer.
func WithCoordinatorObserver(observer Observer) CoordinatorOption {
	return func(c *Coordinator) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// NewCoordinator builds a coordinator for one browser's pending invitation.
func NewCoordinator(store InvitationStore, accepter InvitationAccepter, effector Effector, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:    store,
		accepter: accepter,
		effector: effector,
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// OnAuthChanged reacts to the authentication state. It does nothing until
// authenticated is true, and nothing after the first time it was. It reports
// whether it navigated.
func (c *Coordinator) OnAuthChanged(ctx context.Context, authenticated bool) bool {
	if !authenticated {
		return false
	}
	navigated := false
	c.once.Do(func() {
		navigated = c.accept(ctx)
	})
	return navigated
}

func (c *Coordinator) accept(ctx context.Context) bool {
	if c.store == nil || c.accepter == nil {
		return false
	}
	pending, ok := c.store.Read(ctx)
	if !ok {
		return false
	}

	resp, err := c.accepter.AcceptInvitation(ctx, pending.Token)
	c.store.Clear(ctx)
	c.observer.AcceptFinished(err == nil)

	if err != nil {
		c.logger.Warn("accept pending invitation", zap.Int64("org_id", pending.OrgID), zap.Error(err))
		c.effector.Notify(ctx, Notice{Level: NoticeError, Key: NoticeKeyAcceptFailed})
		c.effector.Navigate(ctx, routepath.VerifyFailWithReason(string(ReasonServer)))
		return true
	}

	orgID := pending.OrgID
	var data backend.InvitationAcceptData
	if err := resp.DecodeData(&data); err == nil && data.OrgID != 0 {
		orgID = data.OrgID
	}
	c.logger.Info("accepted pending invitation", zap.Int64("org_id", orgID))
	c.effector.Notify(ctx, Notice{Level: NoticeSuccess, Key: NoticeKeyAcceptSuccess})
	if orgID <= 0 {
		c.effector.Navigate(ctx, routepath.Root)
		return true
	}
	c.effector.Navigate(ctx, routepath.OrgProjects(orgID))
	return true
}
