package connect

// Session is an end-user connection session.
type Session struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status,omitempty"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SessionConfig describes the session to create.
type SessionConfig struct {
	Language    string `json:"language,omitempty"`
	RedirectURI string `json:"redirect_uri,omitempty"`
	ConnectorID string `json:"connector_id,omitempty"`
	ExternalID  string `json:"external_id,omitempty"`
}

// SessionQuery filters session listings.
type SessionQuery struct {
	StatusIn      []string `json:"status_in,omitempty"`
	CreatedAfter  string   `json:"created_after,omitempty"`
	CreatedBefore string   `json:"created_before,omitempty"`
}

// Connector is a bank connector available for new sessions.
type Connector struct {
	ConnectorID string `json:"connector_id"`
	Name        string `json:"name,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}
