package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	store, err := Dial(context.Background(), Options{Addr: server.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, server
}

func TestStoreRoundTrip(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	assert.True(t, server.Exists(DefaultPrefix+"k"))

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(value))

	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, server.Exists(DefaultPrefix+"k"))
}

func TestStoreAppliesTTLHint(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 15*time.Minute))
	assert.Equal(t, 15*time.Minute+expiryGrace, server.TTL(DefaultPrefix+"k"))

	server.FastForward(15 * time.Minute)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	server.FastForward(time.Minute)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreCustomPrefix(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := New(client, "test:")
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), 0))
	assert.True(t, server.Exists("test:k"))
}

func TestStoreBacksSignupSlot(t *testing.T) {
	store, _ := newTestStore(t)
	slot := pendingstore.NewSignupSlot(store)
	ctx := context.Background()

	slot.Save(ctx, "browser", pendingstore.PendingSignup{Email: "a@b.c", IsVerified: true})
	got, ok := slot.Read(ctx, "browser")
	require.True(t, ok)
	assert.Equal(t, pendingstore.PendingSignup{Email: "a@b.c", IsVerified: true}, got)
}

func TestDialFailures(t *testing.T) {
	_, err := Dial(context.Background(), Options{})
	require.Error(t, err)

	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()
	_, err = Dial(context.Background(), Options{Addr: addr})
	require.Error(t, err)
}
