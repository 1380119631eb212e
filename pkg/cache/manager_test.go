package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManager_Remember_MissThenHit(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore())
	key := Key{Operation: "collection", ContentType: "articles"}

	calls := 0
	producer := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte(`[{"id":1}]`), nil
	}

	first, err := manager.Remember(ctx, key, time.Minute, producer)
	if err != nil {
		t.Fatalf("Remember() error = %v", err)
	}
	second, err := manager.Remember(ctx, key, time.Minute, producer)
	if err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("producer calls = %d, want 1 (second call served from cache)", calls)
	}
	if string(first) != string(second) {
		t.Errorf("cached value %q differs from produced value %q", second, first)
	}
}

func TestManager_Remember_ExpiredEntryRefetches(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := NewManager(store)
	key := Key{Operation: "count", ContentType: "articles"}

	calls := 0
	producer := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte("42"), nil
	}

	if _, err := manager.Remember(ctx, key, time.Nanosecond, producer); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := manager.Remember(ctx, key, time.Minute, producer); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	if calls != 2 {
		t.Errorf("producer calls = %d, want 2 (expired entry must refetch)", calls)
	}
}

func TestManager_Remember_ProducerErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := NewManager(store)
	key := Key{Operation: "entry", ContentType: "articles", Params: map[string]string{"id": "7"}}

	wantErr := errors.New("upstream down")
	_, err := manager.Remember(ctx, key, time.Minute, func(ctx context.Context) ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Remember() error = %v, want %v", err, wantErr)
	}

	if _, err := store.Get(ctx, key.String()); err != ErrCacheMiss {
		t.Errorf("failed fetch must not be cached, got store error %v", err)
	}
}

func TestManager_Forget(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := NewManager(store)
	key := Key{Operation: "single", ContentType: "homepage"}

	if _, err := manager.Remember(ctx, key, time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte(`{"id":1}`), nil
	}); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	if err := manager.Forget(ctx, key); err != nil {
		t.Fatalf("Forget() error = %v", err)
	}

	if _, err := store.Get(ctx, key.String()); err != ErrCacheMiss {
		t.Errorf("expected cache miss after Forget, got %v", err)
	}
}
