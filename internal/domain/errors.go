package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ConfigError is returned when the operator has not provided a required
// setting. It cannot be fixed by retrying.
type ConfigError struct {
	Message string
	Hint    string
}

func (e ConfigError) Error() string {
	return e.Message
}

// ErrMissingCredential is returned before any upstream call when no access
// token is configured.
var ErrMissingCredential = ConfigError{
	Message: "missing forms provider access token",
	Hint:    "set " + EnvAccessToken + " to a Netlify personal access token with access to the site's forms",
}

// UpstreamError is a non-success response from the forms provider.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream responded %d: %s", e.Op, e.Status, e.Body)
}

// Temporary reports whether the provider may succeed on retry.
func (e UpstreamError) Temporary() bool {
	return e.Status >= 500
}
