// Package client is a Go SDK for the cancellation API. It behaves like the
// browser front-end: it keeps the CSRF cookies in a jar, echoes the mirror
// cookie in the CSRF header and sends the caller identity header.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/hashicorp/go-retryablehttp"

	"cancelflow/internal/csrf"
	"cancelflow/internal/entity"
	"cancelflow/internal/entity/generated"
)

const defaultUserHeader = "x-user-id"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// StartResult mirrors the start response.
type StartResult struct {
	CancellationID strfmt.UUID
	Variant        entity.Variant
	PlanPriceCents int64
}

// Client talks to one server as one user.
type Client struct {
	base       *url.URL
	http       *retryablehttp.Client
	jar        http.CookieJar
	userID     string
	userHeader string
	csrfHeader string
	mirror     string
}

// New builds a client for baseURL (scheme and host, optionally a path prefix before /api).
func New(baseURL, userID string, options ...func(*Client)) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = 3
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient.Jar = jar
	rc.HTTPClient.Timeout = 10 * time.Second

	c := &Client{
		base:       base,
		http:       rc,
		jar:        jar,
		userID:     userID,
		userHeader: defaultUserHeader,
		csrfHeader: csrf.DefaultHeaderName,
		mirror:     csrf.DefaultMirrorName,
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

// WithUserHeader overrides the identity header name.
func WithUserHeader(h string) func(*Client) {
	return func(c *Client) {
		if h != "" {
			c.userHeader = h
		}
	}
}

// WithRetry sets the retry count and backoff bounds for 5xx and transport errors.
func WithRetry(max int, waitMin, waitMax time.Duration) func(*Client) {
	return func(c *Client) {
		c.http.RetryMax = max
		if waitMin > 0 {
			c.http.RetryWaitMin = waitMin
		}
		if waitMax > 0 {
			c.http.RetryWaitMax = waitMax
		}
	}
}

// WithLogger logs retry attempts.
func WithLogger(l *slog.Logger) func(*Client) {
	return func(c *Client) {
		if l != nil {
			c.http.Logger = l
		}
	}
}

// WithTransport replaces the underlying round tripper, e.g. for tests.
func WithTransport(rt http.RoundTripper) func(*Client) {
	return func(c *Client) {
		c.http.HTTPClient.Transport = rt
	}
}

// EnsureCSRF fetches the CSRF cookies when the jar does not hold them yet.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	if c.token() != "" {
		return nil
	}
	if err := c.do(ctx, http.MethodGet, "/api/cancellations/start", nil, nil); err != nil {
		return fmt.Errorf("csrf: %w", err)
	}
	if c.token() == "" {
		return errors.New("csrf: server did not set the mirror cookie")
	}
	return nil
}

// Start resumes or creates the cancellation for the subscription.
func (c *Client) Start(ctx context.Context, subscriptionID strfmt.UUID) (*StartResult, error) {
	var out generated.StartCancellationResponse
	in := generated.StartCancellationRequest{SubscriptionID: &subscriptionID}
	if err := c.do(ctx, http.MethodPost, "/api/cancellations/start", in, &out); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	return &StartResult{
		CancellationID: out.CancellationID,
		Variant:        entity.Variant(out.Variant),
		PlanPriceCents: out.PlanPriceCents,
	}, nil
}

// Patch sends the non-nil fields of p.
func (c *Client) Patch(ctx context.Context, id strfmt.UUID, p generated.PatchCancellationRequest) error {
	if err := c.do(ctx, http.MethodPatch, "/api/cancellations/"+url.PathEscape(id.String()), p, nil); err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	return nil
}

// Complete finishes the cancellation; repeating it is safe.
func (c *Client) Complete(ctx context.Context, id strfmt.UUID) error {
	if err := c.do(ctx, http.MethodPost, "/api/cancellations/"+url.PathEscape(id.String())+"/complete", nil, nil); err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	return nil
}

// AcceptDownsell accepts the retention offer; repeating it is safe.
func (c *Client) AcceptDownsell(ctx context.Context, id strfmt.UUID) error {
	if err := c.do(ctx, http.MethodPost, "/api/downsells/"+url.PathEscape(id.String())+"/accept", nil, nil); err != nil {
		return fmt.Errorf("accept downsell: %w", err)
	}
	return nil
}

func (c *Client) token() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == c.mirror {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if method != http.MethodGet {
		if err := c.EnsureCSRF(ctx); err != nil {
			return err
		}
	}

	var body interface{}
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = raw
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(c.userHeader, c.userID)
	}
	if method != http.MethodGet {
		req.Header.Set(c.csrfHeader, c.token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
