// Package transport fetches and decodes marketplace catalog documents over
// HTTP. It knows nothing about the catalog's query shapes; callers hand it
// relative or absolute references and get back a decoded domain.Document.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/metrics"
	"github.com/donaldgifford/marketplace-client/pkg/logger"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// DefaultBaseURL is the public Eclipse Marketplace.
const DefaultBaseURL = "http://marketplace.eclipse.org"

const maxErrorBody = 4096

// ErrNotFound is returned when the service answers 404 for a resource. It
// is catalog.ErrNotFound, so catalog lookups classify it directly.
var ErrNotFound = catalog.ErrNotFound

var _ catalog.Fetcher = (*Client)(nil)

// StatusError is returned for non-success responses other than 404.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("marketplace error (status %d) for %s: %s", e.Code, e.URL, e.Body)
}

// Client implements the catalog fetch service on top of net/http.
type Client struct {
	base        *url.URL
	client      *http.Client
	rateLimiter *RateLimiter
	userAgent   string
	log         *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter makes every request go through r.Wait first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client rooted at baseURL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		if base.RawPath != "" {
			base.RawPath += "/"
		}
	}

	c := &Client{
		base:      base,
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "mpc-go",
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root, always ending in a slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Resolve turns a reference relative to the service root into an absolute
// URL. Absolute references are returned as-is.
func (c *Client) Resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing reference %q: %w", ref, err)
	}
	return c.base.ResolveReference(u).String(), nil
}

// Fetch retrieves and decodes the catalog document at ref.
func (c *Client) Fetch(ctx context.Context, ref string) (*domain.Document, error) {
	resp, err := c.get(ctx, ref, "application/xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := DecodeDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog response: %w", err)
	}
	return doc, nil
}

// Stream returns the raw response body for ref. The caller must close it.
func (c *Client) Stream(ctx context.Context, ref string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, ref, "*/*")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// PostForm sends form as an application/x-www-form-urlencoded POST to ref and
// discards the response body.
func (c *Client) PostForm(ctx context.Context, ref string, form url.Values) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	target, err := c.Resolve(ref)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		target,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
	return nil
}

func (c *Client) get(ctx context.Context, ref, accept string) (*http.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	target, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	target := req.URL.String()
	c.log.Debug("catalog request", "method", req.Method, "url", target)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request %s: %w", target, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", target, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best-effort error body
		return nil, &StatusError{URL: target, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.rateLimiter == nil {
		return nil
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			metrics.DailyLimitHitsTotal.Inc()
		}
		return fmt.Errorf("rate limit: %w", err)
	}
	metrics.DailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	return nil
}
