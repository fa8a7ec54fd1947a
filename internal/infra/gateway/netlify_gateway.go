package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/hl3mural/internal/config"
	"github.com/totegamma/hl3mural/internal/domain"
	"github.com/totegamma/hl3mural/internal/usecase"
)

var tracer = otel.Tracer("gateway")

const maxErrorBody = 4 << 10

// NetlifyGateway talks to the Netlify REST API. Every attempt is bounded by
// the configured timeout; transport errors and 5xx responses are retried with
// exponential backoff.
type NetlifyGateway struct {
	client     *http.Client
	base       string
	timeout    time.Duration
	maxRetries int
	newBackOff func() backoff.BackOff
}

type Option func(*NetlifyGateway)

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(cl *http.Client) Option {
	return func(g *NetlifyGateway) { g.client = cl }
}

// WithBackOff replaces the retry schedule.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(g *NetlifyGateway) { g.newBackOff = fn }
}

func NewNetlifyGateway(conf config.Netlify, opts ...Option) *NetlifyGateway {
	g := &NetlifyGateway{
		client:     &http.Client{},
		base:       strings.TrimRight(conf.APIBase, "/"),
		timeout:    conf.Timeout,
		maxRetries: conf.MaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type netlifyForm struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	SiteID string `json:"site_id"`
}

type netlifySubmission struct {
	ID   string                     `json:"id"`
	Data map[string]json.RawMessage `json:"data"`
}

// ListForms lists the forms visible to token, scoped to siteID when set.
func (g *NetlifyGateway) ListForms(ctx context.Context, token, siteID string) ([]domain.Form, error) {
	ctx, span := tracer.Start(ctx, "Netlify.Gateway.ListForms")
	defer span.End()

	query := url.Values{}
	query.Set("access_token", token)
	if siteID != "" {
		query.Set("site_id", siteID)
		span.SetAttributes(attribute.String("siteID", siteID))
	}

	var raw []netlifyForm
	err := g.get(ctx, "list forms", "/forms", query, &raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	forms := make([]domain.Form, 0, len(raw))
	for _, f := range raw {
		forms = append(forms, domain.Form{ID: f.ID, Name: f.Name, SiteID: f.SiteID})
	}
	return forms, nil
}

// ListSubmissions fetches one page of a form's submissions.
func (g *NetlifyGateway) ListSubmissions(ctx context.Context, token, formID string, page, perPage int) ([]domain.Submission, error) {
	ctx, span := tracer.Start(ctx, "Netlify.Gateway.ListSubmissions")
	defer span.End()
	span.SetAttributes(
		attribute.String("formID", formID),
		attribute.Int("page", page),
		attribute.Int("perPage", perPage),
	)

	query := url.Values{}
	query.Set("access_token", token)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var raw []netlifySubmission
	err := g.get(ctx, "list submissions", "/forms/"+url.PathEscape(formID)+"/submissions", query, &raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	submissions := make([]domain.Submission, 0, len(raw))
	for _, s := range raw {
		data := make(map[string]string, len(s.Data))
		for k, v := range s.Data {
			data[k] = stringify(v)
		}
		submissions = append(submissions, domain.Submission{ID: s.ID, Data: data})
	}
	return submissions, nil
}

func (g *NetlifyGateway) get(ctx context.Context, op, path string, query url.Values, out any) error {
	endpoint := g.base + path + "?" + query.Encode()

	attempt := 0
	operation := func() error {
		attempt++
		return g.do(ctx, op, endpoint, out)
	}
	notify := func(err error, wait time.Duration) {
		slog.WarnContext(
			ctx, "retrying upstream request",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
			slog.String("module", "gateway"),
		)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), uint64(g.maxRetries)), ctx)
	return backoff.RetryNotify(operation, b, notify)
}

// do performs a single attempt. Errors that retrying cannot fix are marked
// permanent.
func (g *NetlifyGateway) do(ctx context.Context, op, endpoint string, out any) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return backoff.Permanent(errors.Wrap(err, op+": create request"))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// url.Error embeds the request url, which carries the access token
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return errors.Wrap(err, op+": perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		uerr := domain.UpstreamError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		if uerr.Temporary() {
			return uerr
		}
		return backoff.Permanent(uerr)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return backoff.Permanent(errors.Wrap(err, op+": decode response"))
	}
	return nil
}

// stringify coerces a submission field to the string the mural expects.
func stringify(raw json.RawMessage) string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return string(raw)
	}
}

var _ usecase.SubmissionGateway = (*NetlifyGateway)(nil)
