package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, subject, email string, exp time.Time) string {
	t.Helper()
	claims := accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestStore(c *clock) (*Store, *pendingstore.Memory) {
	mem := pendingstore.NewMemory()
	return NewStore(mem, WithClock(c.Now), WithIDGenerator(func() string { return "sid-1" })), mem
}

type fakeRefresher struct {
	calls  int
	tokens backend.Tokens
	err    error
	seen   string
}

func (f *fakeRefresher) RefreshTokens(_ context.Context, refreshToken string) (backend.Tokens, error) {
	f.calls++
	f.seen = refreshToken
	return f.tokens, f.err
}

func TestParseClaimsReadsSubjectEmailAndExpiry(t *testing.T) {
	t.Parallel()

	exp := epoch.Add(time.Hour).Truncate(time.Second)
	claims, err := ParseClaims(signToken(t, "user-7", "a@b.c", exp))
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestParseClaimsIgnoresExpiryAndSignature(t *testing.T) {
	t.Parallel()

	claims, err := ParseClaims(signToken(t, "user-7", "", epoch.Add(-time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)
}

func TestParseClaimsRejectsGarbageAndMissingSubject(t *testing.T) {
	t.Parallel()

	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)

	_, err = ParseClaims(signToken(t, "", "a@b.c", epoch))
	assert.ErrorIs(t, err, errMissingSubject)
}

func TestCreateThenGet(t *testing.T) {
	t.Parallel()

	c := &clock{now: epoch}
	store, mem := newTestStore(c)
	access := signToken(t, "user-7", "a@b.c", epoch.Add(time.Hour))

	rec, err := store.Create(context.Background(), backend.Tokens{AccessToken: access, RefreshToken: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "sid-1", rec.ID)
	assert.Equal(t, 1, mem.Len())

	got, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.False(t, got.AccessExpired(epoch))
	assert.True(t, got.AccessExpired(epoch.Add(time.Hour)))
}

func TestGetDropsExpiredSession(t *testing.T) {
	t.Parallel()

	c := &clock{now: epoch}
	store, mem := newTestStore(c)
	_, err := store.Create(context.Background(), backend.Tokens{AccessToken: signToken(t, "u", "", epoch), RefreshToken: "r"})
	require.NoError(t, err)

	c.now = epoch.Add(DefaultTTL + time.Millisecond)
	_, err = store.Get(context.Background(), "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, mem.Len())
}

func TestGetDropsUnreadableSession(t *testing.T) {
	t.Parallel()

	c := &clock{now: epoch}
	store, mem := newTestStore(c)
	require.NoError(t, mem.Set(context.Background(), KeyPrefix+"bad", []byte("{"), 0))

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, mem.Len())
}

func TestGetUnknownAndBlankID(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(&clock{now: epoch})
	_, err := store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesSession(t *testing.T) {
	t.Parallel()

	store, mem := newTestStore(&clock{now: epoch})
	_, err := store.Create(context.Background(), backend.Tokens{AccessToken: signToken(t, "u", "", epoch), RefreshToken: "r"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "sid-1"))
	assert.Equal(t, 0, mem.Len())
	require.NoError(t, store.Delete(context.Background(), ""))
}

func TestTokenSourceServesAndRefreshes(t *testing.T) {
	t.Parallel()

	c := &clock{now: epoch}
	store, _ := newTestStore(c)
	first := signToken(t, "u", "", epoch.Add(time.Minute))
	_, err := store.Create(context.Background(), backend.Tokens{AccessToken: first, RefreshToken: "r1"})
	require.NoError(t, err)

	second := signToken(t, "u", "", epoch.Add(time.Hour))
	refresher := &fakeRefresher{tokens: backend.Tokens{AccessToken: second, RefreshToken: "r2"}}
	source := store.Tokens("sid-1", refresher)

	token, err := source.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, token)

	token, err = source.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, token)
	assert.Equal(t, "r1", refresher.seen)

	rec, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "r2", rec.RefreshToken)
	assert.Equal(t, epoch.Add(time.Hour).UnixMilli(), rec.AccessExpiresAt)
}

func TestTokenSourceWithoutSession(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(&clock{now: epoch})
	source := store.Tokens("missing", &fakeRefresher{})

	_, err := source.AccessToken(context.Background())
	assert.ErrorIs(t, err, backend.ErrNoCredentials)
	_, err = source.Refresh(context.Background())
	assert.ErrorIs(t, err, backend.ErrNoCredentials)
}

func TestTokenSourceRefreshFailureKeepsSession(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(&clock{now: epoch})
	first := signToken(t, "u", "", epoch.Add(time.Minute))
	_, err := store.Create(context.Background(), backend.Tokens{AccessToken: first, RefreshToken: "r1"})
	require.NoError(t, err)

	boom := errors.New("refresh rejected")
	_, err = store.Tokens("sid-1", &fakeRefresher{err: boom}).Refresh(context.Background())
	assert.ErrorIs(t, err, boom)

	rec, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, first, rec.AccessToken)
}

func TestResolveReadsSessionCookie(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(&clock{now: epoch})
	_, err := store.Create(context.Background(), backend.Tokens{AccessToken: signToken(t, "u", "", epoch), RefreshToken: "r"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, store.SignedIn(req))

	req.AddCookie(&http.Cookie{Name: "ourhour_session", Value: "sid-1"})
	rec, ok := store.Resolve(req)
	require.True(t, ok)
	assert.Equal(t, "u", rec.UserID)
	assert.True(t, store.SignedIn(req))
}
