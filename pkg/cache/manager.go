package cache

import (
	"context"
	"fmt"
	"time"
)

// Producer fetches a value on cache miss.
type Producer func(ctx context.Context) ([]byte, error)

// Manager implements the remember/forget contract over a Store.
type Manager struct {
	store Store
}

// NewManager creates a cache manager over the given store.
func NewManager(store Store) *Manager {
	if store == nil {
		panic("store cannot be nil")
	}
	return &Manager{store: store}
}

// Remember returns the cached value for key if present and unexpired.
// Otherwise it invokes producer, stores the result under ttl, and returns it.
// A producer failure is returned without touching the store.
func (m *Manager) Remember(ctx context.Context, key Key, ttl time.Duration, producer Producer) ([]byte, error) {
	cacheKey := key.String()

	data, err := m.store.Get(ctx, cacheKey)
	if err == nil {
		CacheHits.WithLabelValues(backendLabel(m.store)).Inc()
		return data, nil
	}
	if err != ErrCacheMiss {
		// Store failure degrades to a direct fetch
		CacheErrors.WithLabelValues("get").Inc()
	} else {
		CacheMisses.Inc()
	}

	data, err = producer(ctx)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(ctx, cacheKey, data, ttl); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return nil, fmt.Errorf("cache set: %w", err)
	}

	return data, nil
}

// Forget evicts the entry for key.
func (m *Manager) Forget(ctx context.Context, key Key) error {
	if err := m.store.Delete(ctx, key.String()); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return err
	}
	return nil
}

// backendLabel names the store implementation for metrics.
func backendLabel(store Store) string {
	switch store.(type) {
	case *RedisStore:
		return "redis"
	case *MemoryStore:
		return "memory"
	default:
		return "custom"
	}
}
