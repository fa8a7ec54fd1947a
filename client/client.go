package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/hl3mural"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "hl3mural-client"
)

// SubmissionsPath is the proxy route appended to a bare base url.
const SubmissionsPath = "/submissions"

// Client reads pages from a submissions endpoint.
type Client struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

// New creates a client for endpoint. A bare base url such as
// http://localhost:8000 gets SubmissionsPath appended; an endpoint that
// already has a path, like the /.netlify/functions/get-stories alias, is used
// as is.
func New(endpoint string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		endpoint:  submissionsURL(endpoint),
		userAgent: defaultUserAgent,
	}
	httpClient.Transport = c
	return c
}

func submissionsURL(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Path != "" && u.Path != "/") {
		return endpoint
	}
	u.Path = SubmissionsPath
	return u.String()
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// ListSubmissions fetches one page. An empty form selects the server's
// default form.
func (c *Client) ListSubmissions(ctx context.Context, form string, page, perPage int) ([]hl3mural.Entry, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid endpoint")
	}
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if form != "" {
		query.Set("form", form)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var entries []hl3mural.Entry
	err = json.NewDecoder(resp.Body).Decode(&entries)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}
	return entries, nil
}
