package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*RedisSubmissionGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSubmissionGuard(client, time.Minute), mr
}

func TestRedisGuardBlocksSecondAcquire(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	token, ok, err := guard.Acquire(ctx, "student-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = guard.Acquire(ctx, "student-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, guard.Release(ctx, "student-1", token))
	_, ok, err = guard.Acquire(ctx, "student-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGuardReleaseKeepsLockTakenAfterExpiry(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()

	stale, ok, err := guard.Acquire(ctx, "student-1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	current, ok, err := guard.Acquire(ctx, "student-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, guard.Release(ctx, "student-1", stale))
	held, err := mr.Get(submissionLockKey("student-1"))
	require.NoError(t, err)
	assert.Equal(t, current, held)
}
