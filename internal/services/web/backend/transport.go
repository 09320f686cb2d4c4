package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TokenSource supplies bearer tokens for the authenticated client.
type TokenSource interface {
	// AccessToken returns the current access token, empty when signed out.
	AccessToken(ctx context.Context) (string, error)
	// Refresh exchanges the refresh token for a new access token.
	Refresh(ctx context.Context) (string, error)
}

type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	logger *zap.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return nil, ErrNoCredentials
	}
	ctx := req.Context()
	token, err := t.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoCredentials
	}

	resp, err := t.base.RoundTrip(withBearer(req, token))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	refreshed, refreshErr := t.tokens.Refresh(ctx)
	if refreshErr != nil || strings.TrimSpace(refreshed) == "" {
		t.logger.Debug("token refresh failed", zap.Error(refreshErr))
		return resp, nil
	}
	_ = resp.Body.Close()

	retry := withBearer(req, refreshed)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		retry.Body = body
	}
	return t.base.RoundTrip(retry)
}

func withBearer(req *http.Request, token string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return clone
}
