package signup

import (
	"net/http"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Signup, h.handlePage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Signup, h.handleSignup)
	mux.HandleFunc(http.MethodPost+" "+routepath.SignupEmail, h.handleSendEmail)
	mux.HandleFunc(http.MethodPost+" "+routepath.SignupCancel, h.handleCancel)
	mux.HandleFunc(routepath.SignupPrefix+"{rest...}", h.base.WriteNotFound)
}
