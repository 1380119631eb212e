// Package strapi provides a read-only, caching query façade for a
// Strapi-style content API: it fetches collections, entries, and singleton
// types, caches raw bodies for a configurable TTL, flattens the API's
// {id, attributes} envelope, and rewrites relative markdown image links
// into absolute URLs.
package strapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/contentcache/strapi-client/pkg/cache"
)

// SortOrder is the direction of a collection sort.
type SortOrder string

const (
	// SortAsc sorts ascending.
	SortAsc SortOrder = "ASC"

	// SortDesc sorts descending.
	SortDesc SortOrder = "DESC"
)

// Defaults applied where a parameter is left at its zero value.
const (
	DefaultSort  = "id"
	DefaultLimit = 20
	DefaultTTL   = 60 * time.Second
)

// Config holds the façade configuration.
type Config struct {
	// BaseURL is the root of the content API (e.g. "https://cms.example.com").
	// Also used as the prefix for markdown image link rewriting.
	BaseURL string

	// TTL is the cache lifetime for fetched bodies. Defaults to DefaultTTL.
	TTL time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string

	// HTTPClient overrides the transport. Defaults to a 30s-timeout client.
	HTTPClient *http.Client
}

// Client is the Strapi query façade. All operations are read-only and follow
// the same skeleton: build cache key, cache-or-fetch, validate, transform.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// New creates a façade over the given cache store.
func New(cfg Config, store cache.Store) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &Client{
		httpClient: httpClient,
		cache:      cache.NewManager(store),
		config:     cfg,
		logger:     log.With().Str("component", "strapi-client").Logger(),
	}, nil
}

// CollectionParams control a Collection query. Zero values select the
// defaults: sort id:DESC, limit 20, start 0, link rewriting on.
type CollectionParams struct {
	Sort     string
	Order    SortOrder
	Limit    int
	Start    int
	Populate string // comma-separated relation names to inline

	// RawLinks disables markdown image link rewriting.
	RawLinks bool
}

func (p CollectionParams) withDefaults() CollectionParams {
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	if p.Order == "" {
		p.Order = SortDesc
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Start < 0 {
		p.Start = 0
	}
	return p
}

// EntryParams control an Entry fetch.
type EntryParams struct {
	RawLinks bool
}

// FilterParams control an EntriesByField query.
type FilterParams struct {
	Populate string
	RawLinks bool
}

// SingleParams control a Single fetch.
type SingleParams struct {
	// Pluck projects a single field out of the entry when it names a
	// present field.
	Pluck    string
	RawLinks bool
}

// Collection fetches an ordered page of a content type. Each item is
// flattened through TransformData with the populate spec passed through.
func (c *Client) Collection(ctx context.Context, contentType string, p CollectionParams) ([]Entry, error) {
	p = p.withDefaults()

	query := fmt.Sprintf("_sort=%s:%s&_limit=%d&_start=%d", p.Sort, p.Order, p.Limit, p.Start)
	keyParams := map[string]string{
		"_sort":  p.Sort + ":" + string(p.Order),
		"_limit": strconv.Itoa(p.Limit),
		"_start": strconv.Itoa(p.Start),
	}
	if p.Populate != "" {
		query += "&populate=" + p.Populate
		keyParams["populate"] = p.Populate
	}

	key := cache.Key{Operation: "collection", ContentType: contentType, Params: keyParams}

	body, err := c.fetch(ctx, "collection", key, contentType, query)
	if err != nil {
		return nil, err
	}
	items, err := c.validateCollection(ctx, "collection", key, contentType, body)
	if err != nil {
		return nil, err
	}

	return c.transformItems(items, p.Populate, p.RawLinks), nil
}

// CollectionCount fetches the number of entries of a content type.
func (c *Client) CollectionCount(ctx context.Context, contentType string) (int, error) {
	key := cache.Key{Operation: "count", ContentType: contentType}

	body, err := c.fetch(ctx, "count", key, contentType+"/count", "")
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, c.fail(ctx, "count", key, contentType, 0, ErrUnknownResponse)
	}
	return count, nil
}

// Entry fetches a single entry by id. The body is returned as-is after link
// rewriting: this endpoint serves the legacy flat shape and is not run
// through TransformData.
func (c *Client) Entry(ctx context.Context, contentType, id string, p EntryParams) (Entry, error) {
	key := cache.Key{
		Operation:   "entry",
		ContentType: contentType,
		Params:      map[string]string{"id": id},
	}

	body, err := c.fetch(ctx, "entry", key, contentType+"/"+id, "")
	if err != nil {
		return nil, err
	}
	item, err := c.validateEntity(ctx, "entry", key, contentType, body)
	if err != nil {
		return nil, err
	}

	if !p.RawLinks {
		rewriteEntryLinks(item, c.config.BaseURL)
	}
	return Entry(item), nil
}

// EntriesByField fetches all entries whose field equals value. Items are
// validated, link-rewritten, and flattened exactly like Collection results.
func (c *Client) EntriesByField(ctx context.Context, contentType, field, value string, p FilterParams) ([]Entry, error) {
	query := field + "=" + url.QueryEscape(value)
	keyParams := map[string]string{field: value}
	if p.Populate != "" {
		query += "&populate=" + p.Populate
		keyParams["populate"] = p.Populate
	}

	key := cache.Key{Operation: "byfield", ContentType: contentType, Params: keyParams}

	body, err := c.fetch(ctx, "byfield", key, contentType, query)
	if err != nil {
		return nil, err
	}
	items, err := c.validateCollection(ctx, "byfield", key, contentType, body)
	if err != nil {
		return nil, err
	}

	return c.transformItems(items, p.Populate, p.RawLinks), nil
}

// Single fetches a singleton content type. When Pluck names a present field
// only that field's value is returned, otherwise the full entry.
func (c *Client) Single(ctx context.Context, contentType string, p SingleParams) (any, error) {
	key := cache.Key{Operation: "single", ContentType: contentType}

	body, err := c.fetch(ctx, "single", key, contentType, "")
	if err != nil {
		return nil, err
	}
	item, err := c.validateEntity(ctx, "single", key, contentType, body)
	if err != nil {
		return nil, err
	}

	if !p.RawLinks {
		rewriteEntryLinks(item, c.config.BaseURL)
	}

	if p.Pluck != "" {
		if value, ok := item[p.Pluck]; ok {
			return value, nil
		}
	}
	return Entry(item), nil
}

// fetch runs the cache-or-fetch step: the cached raw body when present,
// otherwise one GET against <base>/<path>[?<query>] stored under the
// configured TTL.
func (c *Client) fetch(ctx context.Context, op string, key cache.Key, path, query string) ([]byte, error) {
	return c.cache.Remember(ctx, key, c.config.TTL, func(ctx context.Context) ([]byte, error) {
		requestURL := c.config.BaseURL + "/" + strings.Trim(path, "/")
		if query != "" {
			requestURL += "?" + query
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.config.UserAgent != "" {
			req.Header.Set("User-Agent", c.config.UserAgent)
		}

		c.logger.Debug().
			Str("operation", op).
			Str("url", requestURL).
			Str("cache_key", key.String()).
			Msg("Fetching from content API")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil {
			requestsTotal.WithLabelValues(op, "network_error").Inc()
			return nil, fmt.Errorf("fetch %s: %w", path, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			requestsTotal.WithLabelValues(op, "read_error").Inc()
			return nil, fmt.Errorf("read response body: %w", err)
		}

		requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
		return body, nil
	})
}

// validateCollection decodes body and enforces the array-shape contract:
// statusCode 403 is PermissionDenied, null is NotFound, any other non-array
// body is UnknownResponse. The cache entry is evicted on every failure path.
func (c *Client) validateCollection(ctx context.Context, op string, key cache.Key, contentType string, body []byte) ([]any, error) {
	env := decodeEnvelope(body)
	switch {
	case env.kind == envelopeError && env.statusCode == http.StatusForbidden:
		return nil, c.fail(ctx, op, key, contentType, env.statusCode, ErrPermissionDenied)
	case env.kind == envelopeNull:
		return nil, c.fail(ctx, op, key, contentType, 0, ErrNotFound)
	case env.kind != envelopeCollection:
		return nil, c.fail(ctx, op, key, contentType, env.statusCode, ErrUnknownResponse)
	}
	return env.collection, nil
}

// validateEntity decodes body and enforces the entity-shape contract:
// statusCode 403 is PermissionDenied, null is NotFound, an object without an
// id field (or any non-object) is UnknownResponse. The cache entry is
// evicted on every failure path.
func (c *Client) validateEntity(ctx context.Context, op string, key cache.Key, contentType string, body []byte) (map[string]any, error) {
	env := decodeEnvelope(body)
	switch {
	case env.kind == envelopeError && env.statusCode == http.StatusForbidden:
		return nil, c.fail(ctx, op, key, contentType, env.statusCode, ErrPermissionDenied)
	case env.kind == envelopeNull:
		return nil, c.fail(ctx, op, key, contentType, 0, ErrNotFound)
	case env.kind != envelopeEntity:
		return nil, c.fail(ctx, op, key, contentType, env.statusCode, ErrUnknownResponse)
	}
	if _, ok := env.entity["id"]; !ok {
		return nil, c.fail(ctx, op, key, contentType, 0, ErrUnknownResponse)
	}
	return env.entity, nil
}

// transformItems runs link rewriting then normalization over a decoded
// collection, preserving source order. Non-object items are dropped.
func (c *Client) transformItems(items []any, populateSpec string, rawLinks bool) []Entry {
	populate := splitPopulate(populateSpec)
	out := make([]Entry, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if !rawLinks {
			rewriteEntryLinks(item, c.config.BaseURL)
		}
		out = append(out, TransformData(Entry(item), populate))
	}
	return out
}

// fail evicts the now-invalid cache entry and wraps the sentinel error with
// request context. Eviction failures are logged, not surfaced; the sentinel
// is what the caller must see.
func (c *Client) fail(ctx context.Context, op string, key cache.Key, contentType string, statusCode int, sentinel error) error {
	if err := c.cache.Forget(ctx, key); err != nil {
		c.logger.Warn().
			Err(err).
			Str("cache_key", key.String()).
			Msg("Failed to evict cache entry")
	}

	kind := "unknown"
	switch sentinel {
	case ErrPermissionDenied:
		kind = "permission_denied"
	case ErrNotFound:
		kind = "not_found"
	}
	validationFailures.WithLabelValues(kind).Inc()

	c.logger.Debug().
		Str("operation", op).
		Str("content_type", contentType).
		Int("status_code", statusCode).
		Str("kind", kind).
		Msg("Response rejected")

	return &APIError{
		Operation:   op,
		ContentType: contentType,
		StatusCode:  statusCode,
		Err:         sentinel,
	}
}
