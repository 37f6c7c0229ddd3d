package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyStore scripts remote behavior for failover tests.
type flakyStore struct {
	MemoryStore
	failOps bool
	pingErr error
}

func (f *flakyStore) failure() error {
	if f.failOps {
		return errors.New("connection refused")
	}
	return nil
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, error) {
	if err := f.failure(); err != nil {
		return "", err
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := f.failure(); err != nil {
		return err
	}
	return f.MemoryStore.Set(ctx, key, value, ttl)
}

func (f *flakyStore) Del(ctx context.Context, keys ...string) (int64, error) {
	if err := f.failure(); err != nil {
		return 0, err
	}
	return f.MemoryStore.Del(ctx, keys...)
}

func (f *flakyStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: *NewMemoryStore(0)}
}

func newTestFailover(remote Store) (*FailoverStore, *MemoryStore) {
	fallback := NewMemoryStore(0)
	return NewFailoverStore(remote, fallback, time.Hour, zap.NewNop()), fallback
}

func TestFailoverServesRemoteWhenConnected(t *testing.T) {
	remote := newFlakyStore()
	f, fallback := newTestFailover(remote)
	ctx := context.Background()

	f.probe(ctx)
	require.Equal(t, StateConnected, f.State())

	require.NoError(t, f.Set(ctx, "k", "v", 5*time.Second))

	val, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
	assert.Equal(t, 0, fallback.Len(), "fallback must stay untouched while connected")
}

func TestFailoverSwallowsRemoteFailures(t *testing.T) {
	remote := newFlakyStore()
	f, fallback := newTestFailover(remote)
	ctx := context.Background()

	f.probe(ctx)
	require.Equal(t, StateConnected, f.State())

	remote.failOps = true

	// The write must succeed anyway, landing on the fallback.
	require.NoError(t, f.Set(ctx, "k", "v", 5*time.Second))
	assert.Equal(t, StateDegraded, f.State())
	assert.Equal(t, 1, fallback.Len())

	val, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestFailoverStartsDisconnected(t *testing.T) {
	remote := newFlakyStore()
	remote.pingErr = errors.New("dial timeout")
	f, fallback := newTestFailover(remote)
	ctx := context.Background()

	f.probe(ctx)
	require.Equal(t, StateDisconnected, f.State())

	require.NoError(t, f.Set(ctx, "k", "v", time.Minute))
	assert.Equal(t, 1, fallback.Len())

	val, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestFailoverRemoteMissIsNotFailure(t *testing.T) {
	remote := newFlakyStore()
	f, fallback := newTestFailover(remote)
	ctx := context.Background()

	f.probe(ctx)

	// Seed only the fallback: a remote miss must not fall through to it.
	require.NoError(t, fallback.Set(ctx, "k", "stale", 0))

	_, err := f.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StateConnected, f.State())
}

func TestFailoverPingReportsTruth(t *testing.T) {
	remote := newFlakyStore()
	f, _ := newTestFailover(remote)
	ctx := context.Background()

	f.probe(ctx)
	require.NoError(t, f.Ping(ctx))

	remote.pingErr = errors.New("dial timeout")
	f.probe(ctx)
	assert.ErrorIs(t, f.Ping(ctx), ErrNotConnected)

	status := f.Status()
	assert.False(t, status.Connected)
	assert.True(t, status.UsingFallback)
}

func TestFailoverRecoversAfterProbe(t *testing.T) {
	remote := newFlakyStore()
	f, _ := newTestFailover(remote)
	ctx := context.Background()

	f.probe(ctx)
	remote.failOps = true
	require.NoError(t, f.Set(ctx, "k", "v", time.Minute))
	require.Equal(t, StateDegraded, f.State())

	remote.failOps = false
	f.probe(ctx)
	assert.Equal(t, StateConnected, f.State())
}
