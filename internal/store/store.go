package store

import (
	"context"
	"time"
)

// TTLNone is returned by TTL for keys that exist without an expiry, and for
// keys that do not exist. It mirrors the Redis -1 convention.
const TTLNone = time.Duration(-1)

// Store is the key-value contract shared by the remote client, the in-memory
// fallback and the failover composition. Sessions, rate-limit counters and
// OTP state all live behind this interface.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SRem(ctx context.Context, key string, members ...string) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrNotFound reports a missing key on Get. Defined as a sentinel so callers
// can distinguish "absent" from transport failures.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "store: key not found" }
