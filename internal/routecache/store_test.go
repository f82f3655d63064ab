package routecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type route struct {
	URI   string
	Depth int
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore[route]("routes", DefaultExpiration, DefaultCleanupInterval)
	want := route{URI: "/Root/Inbox", Depth: 2}

	store.Set(context.Background(), want.URI, want, 0)

	got, ok := store.Get(context.Background(), want.URI)
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, 1, store.Len())
}

func TestMemoryStore_Miss(t *testing.T) {
	store := NewMemoryStore[string]("routes", DefaultExpiration, DefaultCleanupInterval)

	got, ok := store.Get(context.Background(), "Root")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestMemoryStore_WrongType(t *testing.T) {
	store := NewMemoryStore[string]("routes", DefaultExpiration, DefaultCleanupInterval)
	store.cache.Set("Root", 123, DefaultExpiration)

	got, ok := store.Get(context.Background(), "Root")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore[string]("routes", DefaultExpiration, DefaultCleanupInterval)
	store.Set(context.Background(), "Root", "x", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := store.Get(context.Background(), "Root")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_DeleteAndFlush(t *testing.T) {
	store := NewMemoryStore[string]("routes", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	store.Set(ctx, "a", "1", 0)
	store.Set(ctx, "b", "2", 0)
	store.Set(ctx, "c", "3", 0)

	store.Delete(ctx)
	require.Equal(t, 3, store.Len())

	store.Delete(ctx, "a", "b")
	_, ok := store.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 1, store.Len())

	store.Flush(ctx)
	require.Zero(t, store.Len())
}

func TestReadThrough_CachesSuccess(t *testing.T) {
	store := NewMemoryStore[route]("routes", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rt := NewReadThrough[route](store, func(_ context.Context, key string) (route, error) {
		calls++
		return route{URI: key, Depth: 1}, nil
	}, time.Minute, false)

	for i := 0; i < 3; i++ {
		got, err := rt.Get(context.Background(), "Root")
		require.NoError(t, err)
		require.Equal(t, "Root", got.URI)
	}
	require.Equal(t, 1, calls)

	rt.Invalidate(context.Background())
	_, err := rt.Get(context.Background(), "Root")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestReadThrough_DoesNotCacheErrors(t *testing.T) {
	store := NewMemoryStore[route]("routes", DefaultExpiration, DefaultCleanupInterval)
	boom := errors.New("unregistered")
	calls := 0
	rt := NewReadThrough[route](store, func(context.Context, string) (route, error) {
		calls++
		return route{}, boom
	}, time.Minute, false)

	_, err := rt.Get(context.Background(), "Ghost")
	require.ErrorIs(t, err, boom)
	_, err = rt.Get(context.Background(), "Ghost")
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls)
	require.Zero(t, store.Len())
}

func TestReadThrough_Skip(t *testing.T) {
	store := NewMemoryStore[route]("routes", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rt := NewReadThrough[route](store, func(_ context.Context, key string) (route, error) {
		calls++
		return route{URI: key}, nil
	}, time.Minute, true)

	_, _ = rt.Get(context.Background(), "Root")
	_, _ = rt.Get(context.Background(), "Root")

	require.Equal(t, 2, calls)
	require.Zero(t, store.Len())
}
