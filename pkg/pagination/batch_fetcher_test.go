package pagination

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/contentcache/strapi-client/pkg/strapi"
)

// fakeSource serves a fixed collection of sequentially numbered entries.
type fakeSource struct {
	mu      sync.Mutex
	total   int
	calls   int
	failAt  int // window start offset that should fail; -1 for none
	failErr error
}

func (f *fakeSource) CollectionCount(ctx context.Context, contentType string) (int, error) {
	return f.total, nil
}

func (f *fakeSource) Collection(ctx context.Context, contentType string, p strapi.CollectionParams) ([]strapi.Entry, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failErr != nil && p.Start == f.failAt {
		return nil, f.failErr
	}

	var entries []strapi.Entry
	for i := p.Start; i < p.Start+p.Limit && i < f.total; i++ {
		entries = append(entries, strapi.Entry{"id": float64(i)})
	}
	return entries, nil
}

func TestFetchAll_PreservesOrder(t *testing.T) {
	source := &fakeSource{total: 25, failAt: -1}
	fetcher := NewBatchFetcher(source, Config{MaxConcurrency: 3, WindowSize: 10})

	entries, err := fetcher.FetchAll(context.Background(), "articles", strapi.CollectionParams{})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	if len(entries) != 25 {
		t.Fatalf("entries = %d, want 25", len(entries))
	}
	for i, entry := range entries {
		if entry["id"] != float64(i) {
			t.Fatalf("entry %d has id %v, order not preserved", i, entry["id"])
		}
	}
	if source.calls != 3 {
		t.Errorf("window fetches = %d, want 3", source.calls)
	}
}

func TestFetchAll_EmptyCollection(t *testing.T) {
	source := &fakeSource{total: 0, failAt: -1}
	fetcher := NewBatchFetcher(source, DefaultConfig())

	entries, err := fetcher.FetchAll(context.Background(), "articles", strapi.CollectionParams{})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestFetchAll_WindowErrorSurfaces(t *testing.T) {
	wantErr := errors.New("window down")
	source := &fakeSource{total: 30, failAt: 10, failErr: wantErr}
	fetcher := NewBatchFetcher(source, Config{MaxConcurrency: 2, WindowSize: 10})

	_, err := fetcher.FetchAll(context.Background(), "articles", strapi.CollectionParams{})
	if !errors.Is(err, wantErr) {
		t.Errorf("FetchAll() error = %v, want %v", err, wantErr)
	}
}

func TestNewBatchFetcher_Defaults(t *testing.T) {
	fetcher := NewBatchFetcher(&fakeSource{failAt: -1}, Config{})

	if fetcher.config.MaxConcurrency <= 0 {
		t.Error("MaxConcurrency default not applied")
	}
	if fetcher.config.WindowSize <= 0 {
		t.Error("WindowSize default not applied")
	}
	if fetcher.config.Timeout <= 0 {
		t.Error("Timeout default not applied")
	}
}
