package flanks

import (
	"os"
	"time"

	"github.com/flanks-io/flanks-go/pkg/flanks/aggregationv1"
	"github.com/flanks-io/flanks-go/pkg/flanks/aggregationv2"
	"github.com/flanks-io/flanks-go/pkg/flanks/connect"
	"github.com/flanks-io/flanks-go/pkg/flanks/credentials"
	"github.com/flanks-io/flanks-go/pkg/flanks/entities"
	"github.com/flanks-io/flanks-go/pkg/flanks/links"
	"github.com/flanks-io/flanks-go/pkg/flanks/report"
	"github.com/flanks-io/flanks-go/pkg/transport"
)

// Environment variables consulted when Config carries no credentials.
const (
	EnvClientID     = "FLANKS_CLIENT_ID"
	EnvClientSecret = "FLANKS_CLIENT_SECRET"
)

// DefaultVersion is the API version date used when none is configured.
const DefaultVersion = "2026-01-01"

// Config holds the facade configuration. Zero values fall back to the
// documented defaults; empty credentials fall back to the environment.
type Config struct {
	ClientID     string
	ClientSecret string

	// BaseURL is the API host (default: production).
	BaseURL string

	// Timeout bounds each HTTP attempt (default 60s).
	Timeout time.Duration

	// Retries is the server-error retry budget (default 1).
	Retries int

	// RetryBackoff is the base backoff between retries (default 1s).
	RetryBackoff time.Duration

	// Version is the target API version date, ISO formatted.
	Version string
}

// Client is the Flanks API facade. It owns the lifetime of the shared
// transport; sub-clients hold a reference to it but never own it.
type Client struct {
	conn    *transport.Connection
	version time.Time

	Credentials   *credentials.Client
	Entities      *entities.Client
	Links         *links.Client
	Report        *report.Client
	AggregationV1 *aggregationv1.Client
	AggregationV2 *aggregationv2.Client
	Connect       *connect.Client
}

// New creates a Client. Missing credentials (after the environment
// fallback) fail fast with a config-classified error.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv(EnvClientID)
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv(EnvClientSecret)
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &transport.Error{
			Class: transport.ClassConfig,
			Message: "missing credentials: provide ClientID and ClientSecret or set " +
				EnvClientID + " and " + EnvClientSecret,
		}
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	version, err := time.Parse("2006-01-02", cfg.Version)
	if err != nil {
		return nil, &transport.Error{
			Class:   transport.ClassConfig,
			Message: "invalid version date " + cfg.Version,
			Err:     err,
		}
	}

	tcfg := transport.DefaultConfig(cfg.ClientID, cfg.ClientSecret)
	if cfg.BaseURL != "" {
		tcfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		tcfg.Timeout = cfg.Timeout
	}
	if cfg.Retries > 0 {
		tcfg.MaxRetries = cfg.Retries
	}
	if cfg.RetryBackoff > 0 {
		tcfg.RetryBackoff = cfg.RetryBackoff
	}

	conn, err := transport.New(tcfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:    conn,
		version: version,

		Credentials:   credentials.New(conn),
		Entities:      entities.New(conn),
		Links:         links.New(conn),
		Report:        report.New(conn),
		AggregationV1: aggregationv1.New(conn),
		AggregationV2: aggregationv2.New(conn),
		Connect:       connect.New(conn),
	}, nil
}

// Transport exposes the underlying connection for raw API calls.
func (c *Client) Transport() *transport.Connection {
	return c.conn
}

// Version returns the configured API version date.
func (c *Client) Version() time.Time {
	return c.version
}

// Close releases the underlying connection. It must be called exactly
// once; further use of the client fails with transport.ErrClosed.
func (c *Client) Close() error {
	return c.conn.Close()
}

// WithClient runs fn with a freshly constructed client and guarantees the
// connection is released on every exit path, including panics.
func WithClient(cfg Config, fn func(*Client) error) error {
	client, err := New(cfg)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}
