// Package report implements the Flanks Report API (beta).
package report

import (
	"context"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/transport"
)

const (
	templatesPath = "/report/v1/list-templates"
	buildPath     = "/report/v1/build-report"
	statusPath    = "/report/v1/get-report-status"
	contentPath   = "/report/v1/get-report-content"
)

// Client calls the Report API through a shared transport connection.
type Client struct {
	conn *transport.Connection
}

// New creates a report client. The connection is shared, not owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

type templatesResponse struct {
	Items []Template `json:"items"`
}

// ListTemplates returns all available report templates.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	resp, err := transport.Object[templatesResponse](ctx, c.conn, http.MethodPost, templatesPath,
		map[string]any{}, nil)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Build starts generating a new report.
func (c *Client) Build(ctx context.Context, req BuildRequest) (Report, error) {
	if req.Language == "" {
		req.Language = "en"
	}
	return transport.Object[Report](ctx, c.conn, http.MethodPost, buildPath, req, nil)
}

// GetStatus returns the current state of a report.
func (c *Client) GetStatus(ctx context.Context, reportID int) (Report, error) {
	return transport.Object[Report](ctx, c.conn, http.MethodPost, statusPath,
		map[string]any{"report_id": reportID}, nil)
}

type contentResponse struct {
	URL string `json:"url"`
}

// ContentURL returns the download URL of a completed report.
func (c *Client) ContentURL(ctx context.Context, reportID int) (string, error) {
	resp, err := transport.Object[contentResponse](ctx, c.conn, http.MethodPost, contentPath,
		map[string]any{"report_id": reportID}, nil)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}
