package verification

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
)

// TokenVerifier is the backend call used by Requester. It must not attach
// session credentials.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, path, token string) (backend.Response, error)
}

// Verifier runs one verification call.
type Verifier interface {
	Verify(ctx context.Context, token string) Result
}

var kindPaths = map[Kind]string{
	KindEmail:         backend.PathEmailVerification,
	KindPasswordReset: backend.PathPasswordVerification,
	KindInvitation:    backend.PathInvitationVerification,
}

// Requester verifies tokens of one kind.
type Requester struct {
	kind     Kind
	client   TokenVerifier
	logger   *zap.Logger
	observer Observer
}

// RequesterOption configures a Requester.
type RequesterOption func(*Requester)

// WithRequesterLogger sets the requester logger.
func WithRequesterLogger(logger *zap.Logger) RequesterOption {
	return func(r *Requester) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRequesterObserver reports every result to observer.
func WithRequesterObserver(observer Observer) RequesterOption {
	return func(r *Requester) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// NewRequester builds a requester for kind.
func NewRequester(kind Kind, client TokenVerifier, opts ...RequesterOption) (*Requester, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown verification kind %q", kind)
	}
	if client == nil {
		return nil, fmt.Errorf("verification client is required")
	}
	r := &Requester{kind: kind, client: client, logger: zap.NewNop(), observer: nopObserver{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = r.logger.With(zap.String("verification_kind", string(kind)))
	return r, nil
}

// Kind returns the requester kind.
func (r *Requester) Kind() Kind { return r.kind }

// Verify calls the kind's endpoint. Every failure is folded into the result.
func (r *Requester) Verify(ctx context.Context, token string) Result {
	result := r.verify(ctx, token)
	r.observer.VerificationFinished(r.kind, result)
	return result
}

func (r *Requester) verify(ctx context.Context, token string) Result {
	resp, err := r.client.VerifyToken(ctx, kindPaths[r.kind], token)
	if err != nil {
		apiErr, ok := backend.AsAPIError(err)
		if !ok {
			r.logger.Warn("verification request failed", zap.Error(err))
			return Result{Status: 0, Reason: ReasonServer, Message: err.Error()}
		}
		reason := Classify(r.kind, apiErr.Status, apiErr.Code, apiErr.Message)
		r.logger.Info("verification rejected",
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Code),
			zap.String("reason", string(reason)),
		)
		return Result{Status: apiErr.Status, Reason: reason, Message: apiErr.Message}
	}

	message := strings.TrimSpace(resp.Message)
	if message == "" {
		message = DefaultSuccessMessage
	}
	result := Result{OK: true, Status: resp.Status, Message: message}

	var data backend.VerificationData
	if err := resp.DecodeData(&data); err != nil {
		r.logger.Debug("ignore verification payload", zap.Error(err))
	} else {
		result.Email = strings.TrimSpace(data.Email)
		if r.kind == KindInvitation {
			result.OrgID = data.OrgID
		}
	}
	return result
}
