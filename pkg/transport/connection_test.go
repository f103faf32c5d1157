package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flanks-io/flanks-go/internal/testutil"
)

// newTestConnection creates a Connection pointed at the mock API with fast
// retry backoff.
func newTestConnection(t *testing.T, api *testutil.MockAPI, cfg Config) *Connection {
	t.Helper()

	if cfg.ClientID == "" {
		cfg.ClientID = "test_id"
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = "test_secret"
	}
	cfg.BaseURL = api.URL()
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 5 * time.Millisecond
	}

	conn, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// setToken installs a session token directly, bypassing the exchange.
func setToken(c *Connection, token string, expiresIn time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
	c.tokenExpiresAt = time.Now().Add(expiresIn)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "valid config",
			config:      Config{ClientID: "id", ClientSecret: "secret"},
			expectError: false,
		},
		{
			name:        "missing client id",
			config:      Config{ClientSecret: "secret"},
			expectError: true,
		},
		{
			name:        "missing client secret",
			config:      Config{ClientID: "id"},
			expectError: true,
		},
		{
			name:        "missing both",
			config:      Config{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := New(tt.config)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if ClassOf(err) != ClassConfig {
					t.Errorf("ClassOf(err) = %q, want %q", ClassOf(err), ClassConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer conn.Close()
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	conn, err := New(Config{ClientID: "id", ClientSecret: "secret"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer conn.Close()

	if conn.config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", conn.config.BaseURL, DefaultBaseURL)
	}
	if conn.config.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", conn.config.Timeout, DefaultTimeout)
	}
	if conn.config.RetryBackoff != DefaultRetryBackoff {
		t.Errorf("RetryBackoff = %v, want %v", conn.config.RetryBackoff, DefaultRetryBackoff)
	}
	if conn.accessToken != "" || !conn.tokenExpiresAt.IsZero() {
		t.Error("New connection should have no token")
	}
}

func TestEnsureToken_SkipsWhenValid(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()

	conn := newTestConnection(t, api, Config{})
	setToken(conn, "valid_token", 10*time.Minute)

	if err := conn.ensureToken(context.Background()); err != nil {
		t.Fatalf("ensureToken failed: %v", err)
	}

	if got := api.TokenRequests(); got != 0 {
		t.Errorf("Token exchanges = %d, want 0", got)
	}
}

func TestEnsureToken_RefreshesWhenExpiringSoon(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()

	conn := newTestConnection(t, api, Config{})
	setToken(conn, "old_token", 60*time.Second) // inside the 5 minute margin

	if err := conn.ensureToken(context.Background()); err != nil {
		t.Fatalf("ensureToken failed: %v", err)
	}

	if got := api.TokenRequests(); got != 1 {
		t.Errorf("Token exchanges = %d, want 1", got)
	}
	if conn.accessToken == "old_token" || conn.accessToken == "" {
		t.Errorf("Token not replaced, got %q", conn.accessToken)
	}
	if !conn.tokenExpiresAt.After(time.Now().Add(30 * time.Minute)) {
		t.Errorf("tokenExpiresAt = %v, want ~1h in the future", conn.tokenExpiresAt)
	}
}

func TestEnsureToken_RefreshesWhenAbsent(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()

	conn := newTestConnection(t, api, Config{})

	if err := conn.ensureToken(context.Background()); err != nil {
		t.Fatalf("ensureToken failed: %v", err)
	}

	if got := api.TokenRequests(); got != 1 {
		t.Errorf("Token exchanges = %d, want 1", got)
	}
	if conn.accessToken == "" {
		t.Error("Token not acquired")
	}
}

func TestEnsureToken_InvalidCredentials(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()

	api.SetTokenResponse(testutil.Response{
		StatusCode: 403,
		Body:       `{"error": "access_denied"}`,
	})

	conn := newTestConnection(t, api, Config{ClientID: "bad", ClientSecret: "bad"})

	err := conn.ensureToken(context.Background())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Class != ClassAuth {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassAuth)
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if string(apiErr.Body) != `{"error": "access_denied"}` {
		t.Errorf("Body = %q, want raw response preserved", apiErr.Body)
	}
	// The exchange is never retried inside ensureToken.
	if got := api.TokenRequests(); got != 1 {
		t.Errorf("Token exchanges = %d, want 1", got)
	}
}

func TestClose(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()

	conn := newTestConnection(t, api, Config{})

	if err := conn.Close(); err != nil {
		t.Fatalf("First Close failed: %v", err)
	}
	if err := conn.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("Second Close = %v, want ErrClosed", err)
	}

	_, err := conn.Call(context.Background(), "POST", "/v0/test", nil, nil)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Call after Close = %v, want ErrClosed", err)
	}
}

func TestEnsureToken_ConcurrentRefreshCoalesces(t *testing.T) {
	api := testutil.NewMockAPI()
	defer api.Close()

	conn := newTestConnection(t, api, Config{})

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			done <- conn.ensureToken(context.Background())
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-done; err != nil {
			t.Fatalf("ensureToken failed: %v", err)
		}
	}

	// Refreshing under the session lock serializes concurrent callers;
	// all but the first observe the fresh token and skip the exchange.
	if got := api.TokenRequests(); got != 1 {
		t.Errorf("Token exchanges = %d, want 1", got)
	}
}
