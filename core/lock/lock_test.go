package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocal_Exclusive(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	lease, err := l.Acquire(ctx, "sync:menu", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "sync:menu", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)

	other, err := l.Acquire(ctx, "sync:store", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, lease.Release(ctx))
	require.NoError(t, lease.Release(ctx), "release is idempotent")

	again, err := l.Acquire(ctx, "sync:menu", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestLocal_HeldPastTTL(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	lease, err := l.Acquire(ctx, "sync:menu", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = l.Acquire(ctx, "sync:menu", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained, "a running sync keeps its lock past the ttl")

	require.NoError(t, lease.Release(ctx))
	again, err := l.Acquire(ctx, "sync:menu", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestLocal_StaleReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	first, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, first.Release(ctx))

	second, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	// A second release of the old lease must not free the new holder
	require.NoError(t, first.Release(ctx))
	_, err = l.Acquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)

	require.NoError(t, second.Release(ctx))
}

func TestLocal_InvalidTTL(t *testing.T) {
	_, err := NewLocal().Acquire(context.Background(), "k", 0)
	assert.Error(t, err)
}

func TestLocal_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocal().Acquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_WithoutAddressIsLocal(t *testing.T) {
	l, err := New(context.Background(), Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Local{}, l)
}

func TestRedis_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	_, err := NewRedis(rdb, nil).Acquire(context.Background(), "sync:menu", time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotObtained)
}
