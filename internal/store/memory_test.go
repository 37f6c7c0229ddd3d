package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "greeting", "hello", 5*time.Second))

	val, err := s.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	now := time.Now()
	s.clock = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "volatile", "x", 5*time.Second))

	val, err := s.Get(ctx, "volatile")
	require.NoError(t, err)
	assert.Equal(t, "x", val)

	now = now.Add(6 * time.Second)

	_, err = s.Get(ctx, "volatile")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len(), "expired entry should be purged on read")
}

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	now := time.Now()
	s.clock = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "counted", "1", time.Minute))
	require.NoError(t, s.Set(ctx, "forever", "1", 0))

	ttl, err := s.TTL(ctx, "counted")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	ttl, err = s.TTL(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, TTLNone, ttl)

	ttl, err = s.TTL(ctx, "absent")
	require.NoError(t, err)
	assert.Equal(t, TTLNone, ttl)
}

func TestMemoryStoreSets(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	added, err := s.SAdd(ctx, "ids", "a", "b", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), added)

	members, err := s.SMembers(ctx, "ids")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)

	removed, err := s.SRem(ctx, "ids", "a", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	members, err = s.SMembers(ctx, "ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
}

func TestMemoryStoreDel(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", "1", 0))
	require.NoError(t, s.Set(ctx, "b", "2", 0))

	deleted, err := s.Del(ctx, "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreCapacityEviction(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(ctx, fmt.Sprintf("key-%d", i), "v", 0))
	}

	// Map is full; the oldest entry goes first.
	require.NoError(t, s.Set(ctx, "key-3", "v", 0))
	assert.Equal(t, 3, s.Len())

	_, err := s.Get(ctx, "key-0")
	assert.ErrorIs(t, err, ErrNotFound)

	val, err := s.Get(ctx, "key-3")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestMemoryStoreCapacityPrefersExpired(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	now := time.Now()
	s.clock = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", "v", time.Second))
	require.NoError(t, s.Set(ctx, "long", "v", time.Hour))

	now = now.Add(2 * time.Second)

	require.NoError(t, s.Set(ctx, "new", "v", 0))

	// The expired entry made room; the live one survives.
	val, err := s.Get(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestMemoryStoreOverwriteDoesNotEvict(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", "1", 0))
	require.NoError(t, s.Set(ctx, "b", "2", 0))
	require.NoError(t, s.Set(ctx, "a", "updated", 0))

	val, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	val, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "updated", val)
}
