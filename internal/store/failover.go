package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// State is the three-way connectivity signal exposed for health reporting.
type State int32

const (
	// StateDisconnected: the remote store is unreachable; all traffic is
	// served from the in-memory fallback.
	StateDisconnected State = iota
	// StateDegraded: a remote command failed recently; traffic is served
	// from the fallback until the next successful health ping.
	StateDegraded
	// StateConnected: the remote store is healthy.
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDegraded:
		return "degraded"
	default:
		return "disconnected"
	}
}

// ErrNotConnected is returned by Ping while the remote store is unreachable.
var ErrNotConnected = errors.New("store: not connected")

// Status is a snapshot of failover health.
type Status struct {
	State         State `json:"-"`
	Connected     bool  `json:"connected"`
	UsingFallback bool  `json:"usingFallback"`
	FallbackSize  int   `json:"fallbackSize"`
}

// FailoverStore composes the remote store with an in-memory fallback. Every
// operation tries the remote first while connected; on failure the same
// operation is replayed against the fallback and the error is swallowed.
// Ping alone reports the truth, so health checks can tell "up" from
// "degraded". Connectivity transitions come from a background ping monitor
// rather than per-call probing, so an operation racing a transition simply
// lands on whichever side it reaches first.
type FailoverStore struct {
	remote   Store
	fallback *MemoryStore
	logger   *zap.Logger

	state        atomic.Int32
	pingInterval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewFailoverStore composes remote and fallback. The store starts
// disconnected until the first successful ping.
func NewFailoverStore(remote Store, fallback *MemoryStore, pingInterval time.Duration, logger *zap.Logger) *FailoverStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pingInterval <= 0 {
		pingInterval = 15 * time.Second
	}
	f := &FailoverStore{
		remote:       remote,
		fallback:     fallback,
		logger:       logger,
		pingInterval: pingInterval,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	f.state.Store(int32(StateDisconnected))
	return f
}

// Start probes the remote once and launches the connectivity monitor.
func (f *FailoverStore) Start(ctx context.Context) {
	f.probe(ctx)
	go f.monitor()
}

func (f *FailoverStore) monitor() {
	defer close(f.done)
	ticker := time.NewTicker(f.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-f.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			f.probe(ctx)
			cancel()
		}
	}
}

func (f *FailoverStore) probe(ctx context.Context) {
	prev := f.State()
	if err := f.remote.Ping(ctx); err != nil {
		f.state.Store(int32(StateDisconnected))
		if prev == StateConnected {
			f.logger.Warn("remote store unreachable, switching to fallback", zap.Error(err))
		}
		return
	}
	f.state.Store(int32(StateConnected))
	if prev != StateConnected {
		f.logger.Info("remote store connected")
	}
}

// State returns the current connectivity state.
func (f *FailoverStore) State() State {
	return State(f.state.Load())
}

// Status returns a health snapshot for reporting endpoints.
func (f *FailoverStore) Status() Status {
	state := f.State()
	return Status{
		State:         state,
		Connected:     state == StateConnected,
		UsingFallback: state != StateConnected,
		FallbackSize:  f.fallback.Len(),
	}
}

func (f *FailoverStore) demote(op, key string, err error) {
	f.state.CompareAndSwap(int32(StateConnected), int32(StateDegraded))
	f.logger.Warn("remote store operation failed, using fallback",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)
}

func (f *FailoverStore) Get(ctx context.Context, key string) (string, error) {
	if f.State() == StateConnected {
		val, err := f.remote.Get(ctx, key)
		if err == nil || errors.Is(err, ErrNotFound) {
			return val, err
		}
		f.demote("get", key, err)
	}
	return f.fallback.Get(ctx, key)
}

func (f *FailoverStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.State() == StateConnected {
		err := f.remote.Set(ctx, key, value, ttl)
		if err == nil {
			return nil
		}
		f.demote("set", key, err)
	}
	return f.fallback.Set(ctx, key, value, ttl)
}

func (f *FailoverStore) Del(ctx context.Context, keys ...string) (int64, error) {
	if f.State() == StateConnected {
		n, err := f.remote.Del(ctx, keys...)
		if err == nil {
			return n, nil
		}
		f.demote("del", "", err)
	}
	return f.fallback.Del(ctx, keys...)
}

func (f *FailoverStore) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	if f.State() == StateConnected {
		n, err := f.remote.SAdd(ctx, key, members...)
		if err == nil {
			return n, nil
		}
		f.demote("sadd", key, err)
	}
	return f.fallback.SAdd(ctx, key, members...)
}

func (f *FailoverStore) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	if f.State() == StateConnected {
		n, err := f.remote.SRem(ctx, key, members...)
		if err == nil {
			return n, nil
		}
		f.demote("srem", key, err)
	}
	return f.fallback.SRem(ctx, key, members...)
}

func (f *FailoverStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if f.State() == StateConnected {
		members, err := f.remote.SMembers(ctx, key)
		if err == nil {
			return members, nil
		}
		f.demote("smembers", key, err)
	}
	return f.fallback.SMembers(ctx, key)
}

func (f *FailoverStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	if f.State() == StateConnected {
		ttl, err := f.remote.TTL(ctx, key)
		if err == nil {
			return ttl, nil
		}
		f.demote("ttl", key, err)
	}
	return f.fallback.TTL(ctx, key)
}

// Ping reports the remote store's health. Unlike the other operations it
// does not fall back: callers use it to distinguish "truly up" from
// "serving out of the in-memory map".
func (f *FailoverStore) Ping(ctx context.Context) error {
	if f.State() != StateConnected {
		return ErrNotConnected
	}
	if err := f.remote.Ping(ctx); err != nil {
		f.state.Store(int32(StateDisconnected))
		return err
	}
	return nil
}

// Close stops the monitor and releases both stores.
func (f *FailoverStore) Close() error {
	f.stopOnce.Do(func() {
		close(f.stop)
		<-f.done
	})
	err := f.remote.Close()
	_ = f.fallback.Close()
	return err
}
