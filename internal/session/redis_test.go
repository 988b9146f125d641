package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/mauriciosalazarsh/anuncia/internal/session"
)

func newTestStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	store, err := session.NewRedisStore(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisStore_PutGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "signed-token", 30*time.Minute))

	token, err := store.Get(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, "signed-token", token)
}

func TestRedisStore_GetAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "never-existed")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_PutOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "first", time.Minute))
	require.NoError(t, store.Put(ctx, "abc123", "second", time.Minute))

	token, err := store.Get(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, "second", token)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "signed-token", 30*time.Minute))

	// One second before expiry the session is live.
	mr.FastForward(30*time.Minute - time.Second)
	_, err := store.Get(ctx, "abc123")
	require.NoError(t, err)

	// Past expiry it reads identically to a session that never existed.
	mr.FastForward(2 * time.Second)
	_, err = store.Get(ctx, "abc123")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "signed-token", time.Minute))
	require.NoError(t, store.Delete(ctx, "abc123"))

	_, err := store.Get(ctx, "abc123")
	require.ErrorIs(t, err, session.ErrNotFound)

	// Deleting again is a no-op, not an error.
	require.NoError(t, store.Delete(ctx, "abc123"))
}

func TestRedisStore_UnavailableBackend(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "signed-token", time.Minute))

	mr.Close()

	_, err := store.Get(ctx, "abc123")
	require.ErrorIs(t, err, session.ErrUnavailable)
	require.NotErrorIs(t, err, session.ErrNotFound)

	require.Error(t, store.Ping(ctx))
}

func TestNewRedisStore_FailsFastOnBadAddr(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := session.NewRedisStore(ctx, "127.0.0.1:1", "", 0)
	require.Error(t, err)
}
