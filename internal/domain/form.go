package domain

// Form is a named collection of submissions on the forms provider.
type Form struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	SiteID string `json:"site_id,omitempty"`
}

// Submission is one record of a form. Data values are already coerced to
// strings by the gateway.
type Submission struct {
	ID   string
	Data map[string]string
}

// Credentials are resolved per request from process-wide configuration.
type Credentials struct {
	AccessToken string
	SiteID      string
}
