// Package links implements the legacy v0 Links API, using the
// redirect_uri/name wire contract.
package links

import (
	"context"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/transport"
)

const (
	listPath     = "/v0/links/list-links"
	createPath   = "/v0/links/create-link"
	editPath     = "/v0/links/edit-link"
	deletePath   = "/v0/links/delete-link"
	pausePath    = "/v0/links/pause-link"
	resumePath   = "/v0/links/resume-link"
	platformPath = "/v0/platform/link"
)

// Client calls the Links API through a shared transport connection.
type Client struct {
	conn *transport.Connection
}

// New creates a links client. The connection is shared, not owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

type listResponse struct {
	Links []Link `json:"links"`
}

// List returns all links.
func (c *Client) List(ctx context.Context) ([]Link, error) {
	resp, err := transport.Object[listResponse](ctx, c.conn, http.MethodGet, listPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Links, nil
}

// Create creates a new link. extra carries optional endpoint fields beyond
// the required redirect URI and name.
func (c *Client) Create(ctx context.Context, redirectURI, name string, extra map[string]string) (Link, error) {
	body := map[string]any{
		"redirect_uri": redirectURI,
		"name":         name,
	}
	for k, v := range extra {
		body[k] = v
	}
	return transport.Object[Link](ctx, c.conn, http.MethodPost, createPath, body, nil)
}

// Edit updates fields of an existing link.
func (c *Client) Edit(ctx context.Context, linkToken string, fields map[string]string) (Link, error) {
	body := map[string]any{"link_token": linkToken}
	for k, v := range fields {
		body[k] = v
	}
	return transport.Object[Link](ctx, c.conn, http.MethodPost, editPath, body, nil)
}

// Delete removes a link.
func (c *Client) Delete(ctx context.Context, linkToken string) error {
	_, err := c.conn.Call(ctx, http.MethodPost, deletePath,
		map[string]any{"link_token": linkToken}, nil)
	return err
}

// Pause pauses a link.
func (c *Client) Pause(ctx context.Context, linkToken string) (Link, error) {
	return transport.Object[Link](ctx, c.conn, http.MethodPost, pausePath,
		map[string]any{"link_token": linkToken}, nil)
}

// Resume resumes a paused link.
func (c *Client) Resume(ctx context.Context, linkToken string) (Link, error) {
	return transport.Object[Link](ctx, c.conn, http.MethodPost, resumePath,
		map[string]any{"link_token": linkToken}, nil)
}

// codesParams carries the link token as a query parameter.
type codesParams struct {
	LinkToken string `url:"link_token"`
}

type codesResponse struct {
	Codes []Code `json:"codes"`
}

// UnusedCodes returns the unused exchange codes of a link.
func (c *Client) UnusedCodes(ctx context.Context, linkToken string) ([]Code, error) {
	resp, err := transport.Object[codesResponse](ctx, c.conn, http.MethodGet, platformPath,
		nil, codesParams{LinkToken: linkToken})
	if err != nil {
		return nil, err
	}
	return resp.Codes, nil
}

type exchangeResponse struct {
	CredentialsToken string `json:"credentials_token"`
}

// ExchangeCode trades an exchange code for a credentials token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	resp, err := transport.Object[exchangeResponse](ctx, c.conn, http.MethodPost, platformPath,
		map[string]any{"code": code}, nil)
	if err != nil {
		return "", err
	}
	return resp.CredentialsToken, nil
}
