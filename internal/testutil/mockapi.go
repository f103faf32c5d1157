// Package testutil provides testing utilities for the Flanks client.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// TokenPath is the client-credentials exchange endpoint served by the mock.
const TokenPath = "/v0/token"

// Response defines the behavior of a mock endpoint response.
type Response struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable mock Flanks API server. It serves a working
// token endpoint by default and lets tests script per-path responses,
// including ordered sequences.
type MockAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	handlers  map[string]http.HandlerFunc
	sequences map[string][]Response

	tokenIssued   int
	requestsTotal int
	requestsByPath map[string]int
	bodiesByPath   map[string][][]byte
	lastAuth       string
}

// NewMockAPI starts a mock server. Callers must Close it.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers:       make(map[string]http.HandlerFunc),
		sequences:      make(map[string][]Response),
		requestsByPath: make(map[string]int),
		bodiesByPath:   make(map[string][][]byte),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		mock.requestsTotal++
		mock.requestsByPath[r.URL.Path]++
		mock.bodiesByPath[r.URL.Path] = append(mock.bodiesByPath[r.URL.Path], body)
		if auth := r.Header.Get("Authorization"); auth != "" {
			mock.lastAuth = auth
		}

		if queue, ok := mock.sequences[r.URL.Path]; ok && len(queue) > 0 {
			resp := queue[0]
			// The last scripted response repeats.
			if len(queue) > 1 {
				mock.sequences[r.URL.Path] = queue[1:]
			}
			mock.mu.Unlock()
			writeResponse(w, resp)
			return
		}

		handler, ok := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if ok {
			handler(w, r)
			return
		}
		if r.URL.Path == TokenPath {
			mock.serveToken(w)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status": "ok"}`)
	}))

	return mock
}

// serveToken issues a fresh token with a one hour lifetime.
func (m *MockAPI) serveToken(w http.ResponseWriter) {
	m.mu.Lock()
	m.tokenIssued++
	n := m.tokenIssued
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": fmt.Sprintf("test-token-%d", n),
		"expires_in":   3600,
		"token_type":   "Bearer",
	})
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all counters, recorded bodies and scripted responses.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokenIssued = 0
	m.requestsTotal = 0
	m.requestsByPath = make(map[string]int)
	m.bodiesByPath = make(map[string][][]byte)
	m.sequences = make(map[string][]Response)
	m.lastAuth = ""
}

// SetHandler sets a custom handler for a path.
func (m *MockAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockAPI) SetResponse(path string, resp Response) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, resp)
	})
}

// QueueResponses scripts an ordered sequence of responses for a path.
// The final response repeats once the queue is drained.
func (m *MockAPI) QueueResponses(path string, responses ...Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequences[path] = responses
}

// SetTokenResponse overrides the default token endpoint behavior.
func (m *MockAPI) SetTokenResponse(resp Response) {
	m.SetResponse(TokenPath, resp)
}

// RequestCount returns the total number of requests received.
func (m *MockAPI) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestsTotal
}

// RequestsTo returns the number of requests received for a path.
func (m *MockAPI) RequestsTo(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestsByPath[path]
}

// TokenRequests returns the number of token exchanges served.
func (m *MockAPI) TokenRequests() int {
	return m.RequestsTo(TokenPath)
}

// Bodies returns the raw request bodies received for a path, in order.
func (m *MockAPI) Bodies(path string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	bodies := make([][]byte, len(m.bodiesByPath[path]))
	copy(bodies, m.bodiesByPath[path])
	return bodies
}

// LastAuthorization returns the most recent Authorization header seen.
func (m *MockAPI) LastAuthorization() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastAuth
}

// OKResponse creates a 200 response with a JSON body.
func OKResponse(body string) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// ServerErrorResponse creates a 500 response.
func ServerErrorResponse() Response {
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// UnauthorizedResponse creates a 401 response.
func UnauthorizedResponse() Response {
	return Response{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"error": "invalid token"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func writeResponse(w http.ResponseWriter, resp Response) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		fmt.Fprint(w, resp.Body)
	}
}
