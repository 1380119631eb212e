package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "absent"); err != ErrCacheMiss {
		t.Errorf("Get(absent) error = %v, want ErrCacheMiss", err)
	}

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get after Delete error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("expired entry Get error = %v, want ErrCacheMiss", err)
	}
	if store.Len() != 0 {
		t.Errorf("expired entry should be collected on read, Len() = %d", store.Len())
	}
}

func TestMemoryStore_NonPositiveTTLNotStored(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := store.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("zero-TTL Set must not store, Get error = %v", err)
	}
}
