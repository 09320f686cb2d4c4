package verify

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/navigator"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

type handlers struct {
	base        modulehandler.Base
	verifiers   map[verification.Kind]verification.Verifier
	invitations *pendingstore.Slot[pendingstore.PendingInvitation]
	signups     *pendingstore.Slot[pendingstore.PendingSignup]
	limiter     *httpx.ClientLimiter
	delay       time.Duration
}

func newHandlers(m Module) handlers {
	return handlers{
		base:        m.base,
		verifiers:   m.verifiers,
		invitations: m.invitations,
		signups:     m.signups,
		limiter:     m.limiter,
		delay:       m.delay,
	}
}

func (h handlers) flow(kind verification.Kind, r *http.Request) verification.Flow {
	query := r.URL.Query()
	token := strings.TrimSpace(query.Get(routepath.TokenQueryKey))
	var flow verification.Flow
	switch kind {
	case verification.KindInvitation:
		orgID, _ := strconv.ParseInt(strings.TrimSpace(query.Get(routepath.OrgIDQueryKey)), 10, 64)
		flow = verification.InvitationFlow(token, orgID)
	case verification.KindPasswordReset:
		flow = verification.PasswordResetFlow(token)
	default:
		flow = verification.EmailFlow(token)
	}
	flow.Delay = h.delay
	return flow
}

func (h handlers) handleVerify(kind verification.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := h.base.Logger(r)
		scope := h.base.BrowserScope(w, r)
		rec := navigator.NewRecorder()

		opts := []verification.ControllerOption{verification.WithControllerLogger(logger)}
		if h.invitations != nil {
			opts = append(opts, verification.WithInvitationStore(h.invitations.For(scope)))
		}
		if h.signups != nil {
			opts = append(opts, verification.WithSignupStore(h.signups.For(scope)))
		}
		controller := verification.NewController(h.flow(kind, r), h.verifiers[kind], rec, opts...)
		defer controller.Close()
		controller.Activate(r.Context())

		h.respond(w, r, rec)
	}
}

// respond replays the recorded effects: an interstitial that refreshes to a
// delayed target, or a redirect for an immediate one.
func (h handlers) respond(w http.ResponseWriter, r *http.Request, rec *navigator.Recorder) {
	rec.Flush(w, r, h.base)
	target, delay, ok := rec.Destination()
	if !ok {
		h.base.Redirect(w, r, routepath.VerifyFailWithReason(string(verification.ReasonServer)))
		return
	}
	if delay <= 0 {
		h.base.Redirect(w, r, target)
		return
	}
	httpx.SetRefresh(w, target, delay)
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "verify.title", http.StatusOK, webtemplates.VerifySuccess(loc, target))
}

func (h handlers) handleFail(w http.ResponseWriter, r *http.Request) {
	reason := verification.ParseReason(strings.TrimSpace(r.URL.Query().Get(routepath.ReasonQueryKey)))
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "verify.title", http.StatusOK, webtemplates.VerifyFail(loc, string(reason)))
}

func (h handlers) handleSuccess(w http.ResponseWriter, r *http.Request) {
	loc := h.base.Localizer(w, r)
	h.base.WritePage(w, r, loc, "verify.title", http.StatusOK, webtemplates.VerifySuccess(loc, ""))
}
