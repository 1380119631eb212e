package pagination

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/contentcache/strapi-client/pkg/strapi"
)

// Config holds batch fetcher configuration.
type Config struct {
	// MaxConcurrency is the maximum number of parallel window fetches.
	MaxConcurrency int

	// WindowSize is the _limit of each window.
	WindowSize int

	// Timeout per window fetch.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 4,
		WindowSize:     100,
		Timeout:        15 * time.Second,
	}
}

// Source is the subset of the façade the batch fetcher needs. Implemented by
// *strapi.Client.
type Source interface {
	Collection(ctx context.Context, contentType string, p strapi.CollectionParams) ([]strapi.Entry, error)
	CollectionCount(ctx context.Context, contentType string) (int, error)
}

// windowResult is one fetched window tagged with its start offset.
type windowResult struct {
	start   int
	entries []strapi.Entry
	err     error
}

// BatchFetcher fetches a whole collection in parallel windows.
type BatchFetcher struct {
	source Source
	config Config
}

// NewBatchFetcher creates a batch fetcher over the given source.
func NewBatchFetcher(source Source, config Config) *BatchFetcher {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.WindowSize <= 0 {
		config.WindowSize = 100
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	return &BatchFetcher{
		source: source,
		config: config,
	}
}

// FetchAll fetches every entry of a content type, preserving collection
// order. The sort, population, and link-rewriting settings of p apply to
// every window; its Limit and Start are overridden.
func (bf *BatchFetcher) FetchAll(ctx context.Context, contentType string, p strapi.CollectionParams) ([]strapi.Entry, error) {
	begin := time.Now()

	total, err := bf.source.CollectionCount(ctx, contentType)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", contentType, err)
	}
	if total == 0 {
		return []strapi.Entry{}, nil
	}

	windows := (total + bf.config.WindowSize - 1) / bf.config.WindowSize

	log.Info().
		Str("content_type", contentType).
		Int("total", total).
		Int("windows", windows).
		Msg("Starting parallel collection fetch")

	starts := make(chan int, windows)
	results := make(chan windowResult, windows)

	go func() {
		for w := 0; w < windows; w++ {
			starts <- w * bf.config.WindowSize
		}
		close(starts)
	}()

	var wg sync.WaitGroup
	for i := 0; i < bf.config.MaxConcurrency; i++ {
		wg.Add(1)
		go bf.worker(ctx, contentType, p, starts, results, &wg)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	fetched := make([]windowResult, 0, windows)
	for result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("window at %d: %w", result.start, result.err)
		}
		fetched = append(fetched, result)
	}

	// Windows arrive in completion order; reassemble by offset.
	sort.Slice(fetched, func(i, j int) bool {
		return fetched[i].start < fetched[j].start
	})

	entries := make([]strapi.Entry, 0, total)
	for _, window := range fetched {
		entries = append(entries, window.entries...)
	}

	log.Info().
		Str("content_type", contentType).
		Int("entries", len(entries)).
		Dur("duration", time.Since(begin)).
		Msg("Collection fetch complete")

	return entries, nil
}

// worker fetches windows from the queue until it drains or the context ends.
func (bf *BatchFetcher) worker(ctx context.Context, contentType string, p strapi.CollectionParams, starts <-chan int, results chan<- windowResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for start := range starts {
		select {
		case <-ctx.Done():
			results <- windowResult{start: start, err: ctx.Err()}
			return
		default:
		}

		windowCtx, cancel := context.WithTimeout(ctx, bf.config.Timeout)
		params := p
		params.Limit = bf.config.WindowSize
		params.Start = start
		entries, err := bf.source.Collection(windowCtx, contentType, params)
		cancel()

		results <- windowResult{start: start, entries: entries, err: err}
		if err != nil {
			return
		}
	}
}
