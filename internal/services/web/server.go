// Package web hosts the browser-facing OURHOUR web service: verification
// links, sign-in, signup continuation, and the organization pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/platform/timeouts"
	"github.com/ourhour/ourhour-web/internal/services/web/acceptance"
	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/composition"
	"github.com/ourhour/ourhour-web/internal/services/web/metrics"
	"github.com/ourhour/ourhour-web/internal/services/web/modules"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/modulehandler"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	"github.com/ourhour/ourhour-web/internal/services/web/session"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

const healthProbeKey = "health:probe"

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr       string
	BackendBaseURL string

	Store StoreConfig

	InvitationTTL       time.Duration
	RedirectDelay       time.Duration
	TrustForwarded      bool
	VerifyRatePerMinute int

	Logger *zap.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
	store      pendingstore.Backend
	stop       func()
}

// NewServer opens the pending-record store and builds the server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	handler, stopHandler, err := NewHandler(cfg, store)
	if err != nil {
		closeStore(store, logger)
		return nil, fmt.Errorf("build handler: %w", err)
	}

	purgeCtx, cancelPurge := context.WithCancel(context.WithoutCancel(ctx))
	purgeDone := startPurgeWorker(purgeCtx, store, logger)

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: logger,
		store:  store,
		stop: func() {
			cancelPurge()
			<-purgeDone
			stopHandler()
		},
	}, nil
}

// NewHandler builds the root handler over store. The returned stop function
// releases background metric subscriptions.
func NewHandler(cfg Config, store pendingstore.Backend) (http.Handler, func(), error) {
	if store == nil {
		return nil, nil, errors.New("pending store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := requestmeta.SchemePolicy{TrustForwarded: cfg.TrustForwarded}

	client, err := backend.New(cfg.BackendBaseURL, backend.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	m := metrics.New()
	stopInflight := m.TrackInflight(client.Tracker())

	sessions := session.NewStore(store, session.WithLogger(logger))
	invitations := pendingstore.NewInvitationSlot(store, pendingstore.WithLogger(logger), pendingstore.WithTTL(cfg.InvitationTTL))
	signups := pendingstore.NewSignupSlot(store, pendingstore.WithLogger(logger))

	verifiers := make(map[verification.Kind]verification.Verifier, 3)
	for _, kind := range []verification.Kind{verification.KindEmail, verification.KindPasswordReset, verification.KindInvitation} {
		requester, err := verification.NewRequester(kind, client,
			verification.WithRequesterLogger(logger),
			verification.WithRequesterObserver(m),
		)
		if err != nil {
			stopInflight()
			return nil, nil, err
		}
		verifiers[kind] = requester
	}

	appHandler, err := composition.ComposeAppHandler(composition.ComposeInput{
		AuthRequired: sessions.SignedIn,
		ModuleDependencies: modules.Dependencies{
			Base: modulehandler.NewBase(policy,
				modulehandler.WithLogger(logger),
				modulehandler.WithSignedIn(sessions.SignedIn),
			),
			Backend:     client,
			Sessions:    sessions,
			Accepter:    acceptance.New(invitations, acceptance.BackendAccepter(client, sessions), acceptance.WithObserver(m)),
			Verifiers:   verifiers,
			Invitations: invitations,
			Signups:     signups,
			VerifyLimiter: httpx.NewClientLimiter(httpx.RateLimitConfig{
				PerMinute: cfg.VerifyRatePerMinute,
				Policy:    policy,
			}),
			RedirectDelay: cfg.RedirectDelay,
		},
	})
	if err != nil {
		stopInflight()
		return nil, nil, err
	}

	root := http.NewServeMux()
	root.Handle("/", appHandler)
	root.Handle(http.MethodGet+" "+routepath.Health, healthHandler(store, logger))
	root.Handle(http.MethodGet+" "+routepath.Metrics, m.Handler())

	handler := httpx.Chain(root,
		httpx.RequestID(logger),
		httpx.RecoverPanic(logger),
		httpx.AccessLog(logger),
		httpx.SameOrigin(policy),
	)
	return otelhttp.NewHandler(handler, "ourhour-web"), stopInflight, nil
}

type healthStatus struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func healthHandler(store pendingstore.Backend, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.StorePing)
		defer cancel()
		if _, _, err := store.Get(ctx, healthProbeKey); err != nil {
			logger.Warn("health store probe", zap.Error(err))
			_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, healthStatus{Status: "degraded", Store: "unavailable"})
			return
		}
		_ = httpx.WriteJSON(w, http.StatusOK, healthStatus{Status: "ok", Store: "ok"})
	})
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", zap.String("addr", s.httpAddr))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops background work and releases the pending-record store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.stop != nil {
		s.stop()
	}
	closeStore(s.store, s.logger)
}

func closeStore(store pendingstore.Backend, logger *zap.Logger) {
	closer, ok := store.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("close pending store", zap.Error(err))
	}
}
