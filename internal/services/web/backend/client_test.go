package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourhour/ourhour-web/internal/platform/inflight"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL+"/", opts...)
	require.NoError(t, err)
	return client
}

func TestNewRejectsBadURLs(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://x", "http://", "::"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}

func TestVerifyTokenSendsTokenQueryWithoutCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathInvitationVerification, r.URL.Path)
		assert.Equal(t, "a b+c", r.URL.Query().Get("token"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"message":"ok","data":{"orgId":42,"email":"a@b.c"}}`)
	})

	resp, err := client.VerifyToken(context.Background(), PathInvitationVerification, "a b+c")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "ok", resp.Message)

	var data VerificationData
	require.NoError(t, resp.DecodeData(&data))
	assert.Equal(t, int64(42), data.OrgID)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"토큰이 만료되었습니다.","code":"TOKEN_EXPIRED"}`)
	})

	_, err := client.VerifyToken(context.Background(), PathEmailVerification, "t")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "err = %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode())
	assert.Equal(t, "TOKEN_EXPIRED", apiErr.Code)
	assert.Equal(t, "토큰이 만료되었습니다.", apiErr.Message)
}

func TestNon2xxWithNonJSONBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.VerifyToken(context.Background(), PathEmailVerification, "t")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "Bad Gateway")
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	client, err := New(server.URL)
	require.NoError(t, err)
	server.Close()

	_, err = client.VerifyToken(context.Background(), PathEmailVerification, "t")
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestCallsHoldInflightReference(t *testing.T) {
	t.Parallel()

	tracker := &inflight.Tracker{}
	var during atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		during.Store(tracker.Count())
		_, _ = io.WriteString(w, `{}`)
	}, WithTracker(tracker))

	_, err := client.VerifyToken(context.Background(), PathEmailVerification, "t")
	require.NoError(t, err)
	assert.Equal(t, int64(1), during.Load())
	assert.Equal(t, int64(0), tracker.Count())
	assert.Same(t, tracker, client.Tracker())
}

type fakeTokens struct {
	access    string
	refreshed string
	refreshes atomic.Int32
	err       error
}

func (f *fakeTokens) AccessToken(context.Context) (string, error) { return f.access, nil }

func (f *fakeTokens) Refresh(context.Context) (string, error) {
	f.refreshes.Add(1)
	if f.err != nil {
		return "", f.err
	}
	f.access = f.refreshed
	return f.refreshed, nil
}

func TestAuthenticatedClientRefreshesOnceOn401(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "inv", body["token"])
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"message":"joined","data":{"orgId":9}}`)
	})
	tokens := &fakeTokens{access: "stale", refreshed: "fresh"}

	resp, err := client.Authenticated(tokens).AcceptInvitation(context.Background(), "inv")
	require.NoError(t, err)
	assert.Equal(t, "joined", resp.Message)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(1), tokens.refreshes.Load())
}

func TestAuthenticatedClientReturns401WhenRefreshFails(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"expired session"}`)
	})
	tokens := &fakeTokens{access: "stale", err: errors.New("refresh revoked")}

	_, err := client.Authenticated(tokens).AcceptInvitation(context.Background(), "inv")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "err = %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(1), tokens.refreshes.Load())
}

func TestAuthenticatedClientRequiresToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls.Add(1) })

	err := client.Authenticated(&fakeTokens{}).SignOut(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Zero(t, calls.Load())
}

func TestSignInDecodesTokens(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSignIn, r.URL.Path)
		var body signInRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body.Email)
		_, _ = io.WriteString(w, `{"data":{"accessToken":"acc","refreshToken":"ref"}}`)
	})

	tokens, err := client.SignIn(context.Background(), " a@b.c ", "pw")
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "acc", RefreshToken: "ref"}, tokens)
}

func TestRefreshKeepsRefreshTokenWhenOmitted(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"accessToken":"acc2"}}`)
	})

	tokens, err := client.RefreshTokens(context.Background(), "ref")
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "acc2", RefreshToken: "ref"}, tokens)
}

func TestSignInRejectsMissingAccessToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{}}`)
	})
	_, err := client.SignIn(context.Background(), "a@b.c", "pw")
	assert.Error(t, err)
}

func TestSignupCalls(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})

	require.NoError(t, client.SendSignupVerification(context.Background(), "a@b.c"))
	require.NoError(t, client.SignUp(context.Background(), SignupRequest{Email: "a@b.c", Password: "pw", Name: "A"}))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"POST " + PathEmailVerification, "POST " + PathSignUp}, paths)
}
