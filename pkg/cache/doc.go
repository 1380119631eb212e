// Package cache provides the TTL cache layer for Strapi responses.
//
// The cache follows a remember/forget contract: Remember returns the cached
// body for a key if present and unexpired, otherwise invokes a producer,
// stores its result under the given TTL, and returns it. Forget evicts a key
// so the next call re-fetches.
//
// # Basic Usage
//
//	store := cache.NewRedisStore(redisClient)
//	manager := cache.NewManager(store)
//
//	key := cache.Key{
//		Operation:   "collection",
//		ContentType: "articles",
//		Params:      map[string]string{"_limit": "20", "_start": "0"},
//	}
//
//	body, err := manager.Remember(ctx, key, 60*time.Second, func(ctx context.Context) ([]byte, error) {
//		// fetch from the content API
//	})
//
// # Backends
//
// Two Store implementations are provided: RedisStore for shared deployments
// and MemoryStore for tests and single-process use. Both give atomic
// get/set/delete per key; neither de-duplicates concurrent misses, so two
// simultaneous callers missing the same key may both run the producer.
//
// # Metrics
//
// The manager exports Prometheus metrics:
//
//   - strapi_cache_hits_total{backend} - Cache hits
//   - strapi_cache_misses_total - Cache misses
//   - strapi_cache_errors_total{operation} - Store operation errors
package cache
