// Package entities implements the Flanks Entities API.
package entities

import (
	"context"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/transport"
)

const availablePath = "/v0/bank/available"

// Entity is a banking institution available for aggregation.
type Entity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// Client calls the Entities API through a shared transport connection.
type Client struct {
	conn *transport.Connection
}

// New creates an entities client. The connection is shared, not owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

// List returns all available banking entities. The endpoint responds with
// a bare array.
func (c *Client) List(ctx context.Context) ([]Entity, error) {
	return transport.List[Entity](ctx, c.conn, http.MethodGet, availablePath, nil, nil)
}
