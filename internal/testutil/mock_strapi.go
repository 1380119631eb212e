// Package testutil provides testing utilities for the Strapi client.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock content API endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockStrapi is a configurable mock Strapi server for testing.
type MockStrapi struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount    int
	LastRequestPath string
	LastRawQuery    string
}

// NewMockStrapi creates a new mock Strapi server.
func NewMockStrapi() *MockStrapi {
	mock := &MockStrapi{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestPath = r.URL.Path
		mock.LastRawQuery = r.URL.RawQuery
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockStrapi) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockStrapi) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockStrapi) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestPath = ""
	m.LastRawQuery = ""
}

// SetHandler sets a custom handler for a specific path.
func (m *MockStrapi) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockStrapi) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockStrapi) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// defaultHandler serves an empty collection.
func (m *MockStrapi) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`[]`))
}

// NewCollectionResponse creates a 200 OK response with a collection body.
func NewCollectionResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewForbiddenResponse creates a Strapi-style embedded 403 error body.
func NewForbiddenResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"statusCode":403,"error":"Forbidden","message":"Forbidden"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNullResponse creates a literal null body (absent resource).
func NewNullResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `null`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}
