// Package credentials implements the Flanks Credentials API.
package credentials

import (
	"context"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/transport"
)

const (
	statusPath = "/v0/bank/credentials/status"
	listPath   = "/v0/bank/credentials/list"
	deletePath = "/v0/bank/credentials"
)

// Client calls the Credentials API through a shared transport connection.
type Client struct {
	conn *transport.Connection
}

// New creates a credentials client. The connection is shared, not owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

// Status returns the current status of a credential.
func (c *Client) Status(ctx context.Context, credentialsToken string) (StatusResponse, error) {
	return transport.Object[StatusResponse](ctx, c.conn, http.MethodPost, statusPath,
		map[string]any{"credentials_token": credentialsToken}, nil)
}

// listResponse is the page-number list contract: credentials under a
// dedicated key, no cursor.
type listResponse struct {
	Credentials []Credential `json:"credentials"`
}

// List returns one page of stored credentials. Pages are 1-based.
func (c *Client) List(ctx context.Context, page int) ([]Credential, error) {
	resp, err := transport.Object[listResponse](ctx, c.conn, http.MethodPost, listPath,
		map[string]any{"page": page}, nil)
	if err != nil {
		return nil, err
	}
	return resp.Credentials, nil
}

// ForceSCA triggers a Strong Customer Authentication refresh.
func (c *Client) ForceSCA(ctx context.Context, credentialsToken string) (StatusResponse, error) {
	return c.updateStatus(ctx, credentialsToken, "force_sca")
}

// ForceReset forces a credential reset.
func (c *Client) ForceReset(ctx context.Context, credentialsToken string) (StatusResponse, error) {
	return c.updateStatus(ctx, credentialsToken, "force_reset")
}

// ForceTransaction forces a transaction data refresh.
func (c *Client) ForceTransaction(ctx context.Context, credentialsToken string) (StatusResponse, error) {
	return c.updateStatus(ctx, credentialsToken, "force_transaction")
}

func (c *Client) updateStatus(ctx context.Context, credentialsToken, action string) (StatusResponse, error) {
	return transport.Object[StatusResponse](ctx, c.conn, http.MethodPut, statusPath,
		map[string]any{"credentials_token": credentialsToken, "action": action}, nil)
}

// Delete removes a credential.
func (c *Client) Delete(ctx context.Context, credentialsToken string) error {
	_, err := c.conn.Call(ctx, http.MethodDelete, deletePath,
		map[string]any{"credentials_token": credentialsToken}, nil)
	return err
}
