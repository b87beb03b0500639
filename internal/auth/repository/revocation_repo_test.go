package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisRevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRevocationStore(client), mr
}

func TestRedisRevocationStore(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("auth:revoked:jti-1"))

	mr.FastForward(time.Hour + time.Second)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStore_ExpiredTokenSkipped(t *testing.T) {
	store, mr := setupRedisStore(t)

	require.NoError(t, store.Revoke(context.Background(), "old", 0))
	assert.False(t, mr.Exists("auth:revoked:old"))
}

func TestRedisRevocationStore_Unavailable(t *testing.T) {
	store, mr := setupRedisStore(t)
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "a", time.Minute))
	revoked, err := store.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = store.IsRevoked(ctx, "b")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = store.IsRevoked(ctx, "a")
	assert.False(t, revoked)
	assert.Empty(t, store.revoked)
}
