package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies a cached Strapi response. Every parameter that changes the
// shape of a request must appear in Params so distinct requests never share
// an entry.
type Key struct {
	// Operation is the façade operation name (e.g. "collection", "single")
	Operation string

	// ContentType is the Strapi content type (e.g. "articles")
	ContentType string

	// Params are the request parameters (sort, pagination, populate, filters)
	Params map[string]string
}

// String generates a deterministic cache key string.
// Format: strapi:operation:content-type:param1=val1:param2=val2
//
// Example:
//
//	strapi:collection:articles:_limit=20:_sort=id:DESC:_start=0
func (k Key) String() string {
	parts := []string{"strapi"}

	if op := strings.TrimSpace(k.Operation); op != "" {
		parts = append(parts, op)
	}
	if ct := strings.Trim(k.ContentType, "/"); ct != "" {
		parts = append(parts, ct)
	}

	// Params sorted for determinism
	if len(k.Params) > 0 {
		names := make([]string, 0, len(k.Params))
		for name := range k.Params {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, k.Params[name]))
		}
	}

	return strings.Join(parts, ":")
}
