package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a stored value with its expiry deadline.
type memoryEntry struct {
	value   []byte
	expires time.Time
}

func (e memoryEntry) expired() bool {
	return time.Now().After(e.expires)
}

// MemoryStore is an in-process Store for tests and single-process
// deployments. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the value for key, or ErrCacheMiss if absent or expired.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.expired() {
		_ = s.Delete(ctx, key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores value under key for ttl.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		value:   value,
		expires: time.Now().Add(ttl),
	}
	return nil
}

// Delete evicts key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len reports the number of stored entries, including not-yet-collected
// expired ones.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
