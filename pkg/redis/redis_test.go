package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (IRedis, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return NewWithClient(client), server
}

func TestAcquireLock(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	ok, err := r.AcquireLock(ctx, "budget:1:lock", "holder-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.AcquireLock(ctx, "budget:1:lock", "holder-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "a held lock must not be acquired by another token")
}

func TestReleaseLockByHolder(t *testing.T) {
	r, server := newTestRedis(t)
	ctx := context.Background()

	_, err := r.AcquireLock(ctx, "budget:1:lock", "holder-a", time.Minute)
	require.NoError(t, err)

	require.NoError(t, r.ReleaseLock(ctx, "budget:1:lock", "holder-a"))
	assert.False(t, server.Exists("budget:1:lock"))

	ok, err := r.AcquireLock(ctx, "budget:1:lock", "holder-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseLockIgnoresNonHolder(t *testing.T) {
	r, server := newTestRedis(t)
	ctx := context.Background()

	_, err := r.AcquireLock(ctx, "budget:1:lock", "holder-a", time.Minute)
	require.NoError(t, err)

	require.NoError(t, r.ReleaseLock(ctx, "budget:1:lock", "holder-b"))
	assert.True(t, server.Exists("budget:1:lock"), "only the holder may release")
}

func TestReleaseLockMissingKey(t *testing.T) {
	r, _ := newTestRedis(t)

	assert.NoError(t, r.ReleaseLock(context.Background(), "budget:1:lock", "holder-a"))
}

func TestStaleReleaseCannotDeleteReacquiredLock(t *testing.T) {
	r, server := newTestRedis(t)
	ctx := context.Background()

	ok, err := r.AcquireLock(ctx, "budget:1:lock", "holder-a", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	server.FastForward(100 * time.Millisecond)

	ok, err = r.AcquireLock(ctx, "budget:1:lock", "holder-b", time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "expired lock must be acquirable")

	require.NoError(t, r.ReleaseLock(ctx, "budget:1:lock", "holder-a"))

	value, err := server.Get("budget:1:lock")
	require.NoError(t, err)
	assert.Equal(t, "holder-b", value, "stale holder must not delete the new holder's lock")
}
