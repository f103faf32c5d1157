package links

// Link is a connection link for end-user authentication.
type Link struct {
	LinkToken   string `json:"link_token"`
	Name        string `json:"name,omitempty"`
	RedirectURI string `json:"redirect_uri,omitempty"`
	IsPaused    bool   `json:"is_paused,omitempty"`
}

// Code is an unused exchange code belonging to a link.
type Code struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
