package verify

import (
	"net/http"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	limit := func(next http.HandlerFunc) http.Handler {
		if h.limiter == nil {
			return next
		}
		return httpx.RateLimit(h.limiter)(next)
	}
	mux.Handle(http.MethodGet+" "+routepath.VerifyEmail, limit(h.handleVerify(verification.KindEmail)))
	mux.Handle(http.MethodGet+" "+routepath.VerifyPassword, limit(h.handleVerify(verification.KindPasswordReset)))
	mux.Handle(http.MethodGet+" "+routepath.VerifyInvitation, limit(h.handleVerify(verification.KindInvitation)))
	mux.HandleFunc(http.MethodGet+" "+routepath.VerifyFail, h.handleFail)
	mux.HandleFunc(http.MethodGet+" "+routepath.VerifySuccess, h.handleSuccess)
	mux.HandleFunc(http.MethodGet+" "+routepath.VerifyPrefix+"{rest...}", h.base.WriteNotFound)
}
