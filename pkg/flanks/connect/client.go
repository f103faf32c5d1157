// Package connect implements the Flanks Connect API v2: end-user
// connection sessions and the connectors they can target.
package connect

import (
	"context"
	"iter"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/pagination"
	"github.com/flanks-io/flanks-go/pkg/transport"
)

const (
	listSessionsPath   = "/connect/v2/sessions/list-sessions"
	createSessionPath  = "/connect/v2/sessions/create-session"
	listConnectorsPath = "/connect/v2/connectors/list-connectors"

	itemsKey = "items"
)

// Client calls the Connect API through a shared transport connection.
type Client struct {
	conn *transport.Connection
}

// New creates a connect client. The connection is shared, not owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

// ListSessions iterates over every session matching the query, fetching
// pages lazily.
func (c *Client) ListSessions(ctx context.Context, query *SessionQuery) iter.Seq2[Session, error] {
	return c.sessionsPager(query).All(ctx)
}

// SessionsPage fetches a single page of sessions. An empty pageToken
// requests the first page.
func (c *Client) SessionsPage(ctx context.Context, query *SessionQuery, pageToken string) (pagination.Page[Session], error) {
	return c.sessionsPager(query).Next(ctx, pageToken)
}

func (c *Client) sessionsPager(query *SessionQuery) *pagination.Pager[Session] {
	body := map[string]any{"query": map[string]any{}}
	if query != nil {
		body["query"] = query
	}
	return pagination.NewPager[Session](c.conn, listSessionsPath, body, itemsKey)
}

type createSessionResponse struct {
	Session Session `json:"session"`
}

// CreateSession creates a new connection session.
func (c *Client) CreateSession(ctx context.Context, config SessionConfig) (Session, error) {
	resp, err := transport.Object[createSessionResponse](ctx, c.conn, http.MethodPost, createSessionPath,
		map[string]any{"configuration": config}, nil)
	if err != nil {
		return Session{}, err
	}
	return resp.Session, nil
}

// ListConnectors iterates over available connectors, optionally filtered
// by ID.
func (c *Client) ListConnectors(ctx context.Context, connectorIDs []string) iter.Seq2[Connector, error] {
	query := map[string]any{}
	if len(connectorIDs) > 0 {
		query["connector_id_in"] = connectorIDs
	}
	pager := pagination.NewPager[Connector](c.conn, listConnectorsPath,
		map[string]any{"query": query}, itemsKey)
	return pager.All(ctx)
}
