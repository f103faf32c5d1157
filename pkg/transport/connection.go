package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flanks-io/flanks-go/pkg/logging"
)

const (
	// DefaultBaseURL is the production Flanks API host.
	DefaultBaseURL = "https://api.flanks.io"

	// DefaultTimeout bounds every HTTP attempt, including the token exchange.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the number of re-attempts for server errors.
	DefaultMaxRetries = 1

	// DefaultRetryBackoff is the base delay between retries.
	DefaultRetryBackoff = 1 * time.Second

	// tokenPath is the client-credentials exchange endpoint.
	tokenPath = "/v0/token"

	// tokenExpiryMargin is the safety window before expiry within which
	// the token is refreshed proactively.
	tokenExpiryMargin = 300 * time.Second
)

// Config holds the transport configuration. ClientID and ClientSecret are
// required; zero values elsewhere fall back to the documented defaults.
type Config struct {
	ClientID     string
	ClientSecret string

	// BaseURL is the API host (default: production).
	BaseURL string

	// Timeout applies to each individual HTTP attempt.
	Timeout time.Duration

	// MaxRetries is the number of re-attempts after the initial request
	// for server errors (>=500). Other failures are never retried here.
	MaxRetries int

	// RetryBackoff is the base backoff; attempt n waits RetryBackoff * 2^n.
	RetryBackoff time.Duration
}

// DefaultConfig returns the documented default configuration for the
// given credentials.
func DefaultConfig(clientID, clientSecret string) Config {
	return Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		MaxRetries:   DefaultMaxRetries,
		RetryBackoff: DefaultRetryBackoff,
	}
}

// Connection is the single choke point for all Flanks API communication.
// It owns the bearer token and the underlying HTTP client; both are
// created lazily and released by Close.
type Connection struct {
	config  Config
	baseURL *url.URL
	policy  retryPolicy
	logger  zerolog.Logger

	httpOnce   sync.Once
	httpClient *http.Client

	// mu guards the session token fields and the closed flag. Refreshing
	// while holding mu coalesces concurrent refreshes behind one exchange.
	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
	closed         bool

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Connection. It fails with a config-classified error when
// credentials are missing or the base URL does not parse.
func New(cfg Config) (*Connection, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, newConfigError("client_id and client_secret are required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, newConfigError("invalid base URL %q: %v", cfg.BaseURL, err)
	}

	return &Connection{
		config:  cfg,
		baseURL: baseURL,
		policy:  retryPolicy{MaxRetries: cfg.MaxRetries, Backoff: cfg.RetryBackoff},
		logger:  logging.NewLogger("transport"),
		now:     time.Now,
	}, nil
}

// http returns the shared HTTP client, creating it on first use.
func (c *Connection) http() *http.Client {
	c.httpOnce.Do(func() {
		c.httpClient = &http.Client{
			Timeout: c.config.Timeout,
		}
	})
	return c.httpClient
}

// Close releases the underlying connection resources exactly once.
// Any use of the Connection afterwards fails with ErrClosed.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true
	c.accessToken = ""
	c.tokenExpiresAt = time.Time{}

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}

	c.logger.Debug().Msg("Connection closed")
	return nil
}

// ensureToken guarantees a token valid for at least the expiry margin,
// performing a token exchange when the cached one is absent or expiring.
func (c *Connection) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.accessToken != "" && c.now().Before(c.tokenExpiresAt.Add(-tokenExpiryMargin)) {
		return nil
	}
	return c.refreshTokenLocked(ctx)
}

// forceRefresh performs an unconditional token exchange. Used for reactive
// recovery after a 401.
func (c *Connection) forceRefresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return c.refreshTokenLocked(ctx)
}

// tokenRequest is the client-credentials exchange payload.
type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

// tokenResponse is the token endpoint's success payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// refreshTokenLocked exchanges client credentials for a fresh token.
// Callers must hold c.mu. A 403 means rejected credentials and is
// classified as an auth error; it is never retried here.
func (c *Connection) refreshTokenLocked(ctx context.Context) error {
	payload, err := json.Marshal(tokenRequest{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return newContractError("marshal token request: %v", err)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: tokenPath})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return newContractError("create token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http().Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Token exchange failed")
		return newNetworkError("token exchange failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError("read token response", err)
	}

	if resp.StatusCode == http.StatusForbidden {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("Client credentials rejected")
		flanksErrorsTotal.WithLabelValues(string(ClassAuth)).Inc()
		return &Error{
			Class:      ClassAuth,
			StatusCode: resp.StatusCode,
			Message:    "invalid client credentials",
			Body:       body,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return newContractError("decode token response: %v", err)
	}
	if token.AccessToken == "" {
		return newContractError("token response missing access_token")
	}

	c.accessToken = token.AccessToken
	c.tokenExpiresAt = c.now().Add(time.Duration(token.ExpiresIn) * time.Second)

	flanksTokenRefreshesTotal.Inc()
	c.logger.Debug().
		Time("expires_at", c.tokenExpiresAt).
		Msg("Access token refreshed")

	return nil
}

// bearerToken snapshots the current token under the lock.
func (c *Connection) bearerToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", ErrClosed
	}
	return c.accessToken, nil
}
