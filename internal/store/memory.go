package store

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxKeys caps the fallback map. Under a sustained Redis outage the
// rate-limit keyspace is unbounded, so the degraded store refuses to grow
// past this by evicting its oldest entry.
const DefaultMaxKeys = 10000

type memoryEntry struct {
	value   string
	members map[string]struct{}
	expiry  time.Time // zero means no expiry
	seq     uint64
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiry.IsZero() && !e.expiry.After(now)
}

// MemoryStore is the in-process substitute used while the remote store is
// unreachable. Entries expire lazily and are purged on the next read. Data
// does not survive a restart; this is a degraded-availability mode, not a
// durable store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	maxKeys int
	seq     uint64
	clock   func() time.Time
}

// NewMemoryStore builds a fallback store. maxKeys <= 0 applies DefaultMaxKeys.
func NewMemoryStore(maxKeys int) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		maxKeys: maxKeys,
		clock:   time.Now,
	}
}

// Len reports the current number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(key)
	if !ok {
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureCapacity(key)
	entry := &memoryEntry{value: value, seq: s.nextSeq()}
	if ttl > 0 {
		entry.expiry = s.clock().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Del(ctx context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, key := range keys {
		if _, ok := s.entries[key]; ok {
			delete(s.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(key)
	if !ok || entry.members == nil {
		s.ensureCapacity(key)
		entry = &memoryEntry{members: make(map[string]struct{}), seq: s.nextSeq()}
		s.entries[key] = entry
	}

	var added int64
	for _, m := range members {
		if _, exists := entry.members[m]; !exists {
			entry.members[m] = struct{}{}
			added++
		}
	}
	return added, nil
}

func (s *MemoryStore) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(key)
	if !ok || entry.members == nil {
		return 0, nil
	}

	var removed int64
	for _, m := range members {
		if _, exists := entry.members[m]; exists {
			delete(entry.members, m)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) SMembers(ctx context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(key)
	if !ok || entry.members == nil {
		return nil, nil
	}

	members := make([]string, 0, len(entry.members))
	for m := range entry.members {
		members = append(members, m)
	}
	return members, nil
}

func (s *MemoryStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(key)
	if !ok || entry.expiry.IsZero() {
		return TTLNone, nil
	}
	remaining := entry.expiry.Sub(s.clock())
	if remaining <= 0 {
		return TTLNone, nil
	}
	return remaining, nil
}

// Ping always succeeds; the fallback map has no transport to fail.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close drops all entries.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*memoryEntry)
	return nil
}

// live returns the entry for key, purging it when expired. Callers must hold
// the mutex.
func (s *MemoryStore) live(key string) (*memoryEntry, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if entry.expired(s.clock()) {
		delete(s.entries, key)
		return nil, false
	}
	return entry, true
}

func (s *MemoryStore) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// ensureCapacity makes room for key: first sweeps expired entries, then, if
// the map is still full, evicts the oldest entry. Overwrites of an existing
// key never evict.
func (s *MemoryStore) ensureCapacity(key string) {
	if _, exists := s.entries[key]; exists {
		return
	}
	if len(s.entries) < s.maxKeys {
		return
	}

	now := s.clock()
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
		}
	}
	if len(s.entries) < s.maxKeys {
		return
	}

	var oldestKey string
	var oldestSeq uint64
	for k, e := range s.entries {
		if oldestKey == "" || e.seq < oldestSeq {
			oldestKey = k
			oldestSeq = e.seq
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
