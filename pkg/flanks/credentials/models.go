package credentials

import "time"

// Status is the lifecycle state of a stored credential.
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusError   Status = "error"
	StatusExpired Status = "expired"
)

// Credential is a stored bank credential.
type Credential struct {
	CredentialsToken string     `json:"credentials_token"`
	EntityID         string     `json:"entity_id"`
	Status           Status     `json:"status"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// StatusResponse is returned by the status and force-action endpoints.
type StatusResponse struct {
	CredentialsToken string `json:"credentials_token"`
	Status           Status `json:"status"`
	EntityID         string `json:"entity_id,omitempty"`
}
