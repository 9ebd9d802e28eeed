package outputcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, "test:"), mr
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	_, hit, err := store.Get(ctx, "/api/books")
	require.NoError(t, err)
	assert.False(t, hit)

	want := &Entry{Status: 200, ContentType: "application/json", Body: []byte(`{"success":true}`)}
	require.NoError(t, store.Set(ctx, "/api/books", "books", want, time.Minute))

	got, hit, err := store.Get(ctx, "/api/books")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	_, hit, err = store.Get(ctx, "/api/books")
	require.NoError(t, err)
	assert.False(t, hit, "entry expires with its ttl")
}

func TestStore_EvictByTag(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	e := &Entry{Status: 200, Body: []byte("x")}

	require.NoError(t, store.Set(ctx, "/api/books", "books", e, time.Minute))
	require.NoError(t, store.Set(ctx, "/api/books/dune-1965", "books", e, time.Minute))
	require.NoError(t, store.Set(ctx, "/other", "other", e, time.Minute))

	require.NoError(t, store.EvictByTag(ctx, "books"))

	for _, key := range []string{"/api/books", "/api/books/dune-1965"} {
		_, hit, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, hit, key)
	}
	_, hit, err := store.Get(ctx, "/other")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.False(t, mr.Exists("test:tag:books"))
}

func TestStore_EvictUnknownTag(t *testing.T) {
	store, _ := newTestStore(t)
	assert.NoError(t, store.EvictByTag(context.Background(), "nothing"))
}

func TestStore_ErrorsWhenRedisIsDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "/api/books")
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}
