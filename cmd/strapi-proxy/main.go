// Command strapi-proxy is a read-through caching proxy in front of a Strapi
// content API. It exposes the query façade's operations over HTTP and serves
// Prometheus metrics.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/contentcache/strapi-client/internal/config"
	"github.com/contentcache/strapi-client/pkg/cache"
	"github.com/contentcache/strapi-client/pkg/logging"
	"github.com/contentcache/strapi-client/pkg/pagination"
	"github.com/contentcache/strapi-client/pkg/strapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.Setup(logging.DefaultConfig())
		fallback.Fatal().Err(err).Msg("Configuration error")
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to cache backend")
	}

	client, err := strapi.New(strapi.Config{
		BaseURL: cfg.StrapiURL,
		TTL:     cfg.CacheTTL,
	}, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Strapi client")
	}

	srv := &server{
		client:  client,
		batcher: pagination.NewBatchFetcher(client, pagination.DefaultConfig()),
		logger:  logging.NewLogger("strapi-proxy"),
	}

	addr := ":" + cfg.Port
	logger.Info().
		Str("addr", addr).
		Str("strapi_url", cfg.StrapiURL).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting strapi-proxy")

	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// newStore picks the cache backend: Redis when configured, in-memory
// otherwise.
func newStore(cfg *config.Config) (cache.Store, error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryStore(), nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return cache.NewRedisStore(redisClient), nil
}

type server struct {
	client  *strapi.Client
	batcher *pagination.BatchFetcher
	logger  zerolog.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/content/{type}", func(r chi.Router) {
		r.Get("/", s.handleCollection)
		r.Get("/count", s.handleCount)
		r.Get("/all", s.handleAll)
		r.Get("/{id}", s.handleEntry)
	})
	r.Get("/single/{type}", s.handleSingle)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// collectionParams maps proxy query parameters onto façade parameters.
func collectionParams(r *http.Request) strapi.CollectionParams {
	q := r.URL.Query()
	p := strapi.CollectionParams{
		Sort:     q.Get("sort"),
		Populate: q.Get("populate"),
		RawLinks: q.Get("raw") == "1",
	}
	if order := q.Get("order"); order != "" {
		p.Order = strapi.SortOrder(order)
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = limit
	}
	if start, err := strconv.Atoi(q.Get("start")); err == nil {
		p.Start = start
	}
	return p
}

func (s *server) handleCollection(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "type")

	entries, err := s.client.Collection(r.Context(), contentType, collectionParams(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, entries)
}

func (s *server) handleCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.client.CollectionCount(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]int{"count": count})
}

func (s *server) handleAll(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "type")

	entries, err := s.batcher.FetchAll(r.Context(), contentType, collectionParams(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, entries)
}

func (s *server) handleEntry(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "type")
	id := chi.URLParam(r, "id")

	entry, err := s.client.Entry(r.Context(), contentType, id, strapi.EntryParams{
		RawLinks: r.URL.Query().Get("raw") == "1",
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, entry)
}

func (s *server) handleSingle(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "type")

	value, err := s.client.Single(r.Context(), contentType, strapi.SingleParams{
		Pluck:    r.URL.Query().Get("pluck"),
		RawLinks: r.URL.Query().Get("raw") == "1",
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, value)
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, strapi.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, strapi.ErrPermissionDenied):
		status = http.StatusForbidden
	}

	s.logger.Warn().Err(err).Int("status", status).Msg("Request failed")
	http.Error(w, err.Error(), status)
}
