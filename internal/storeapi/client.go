// Package storeapi is the HTTP client of the store directory endpoint:
//
//	GET <base>?q=<query>&start_with=<offset>&n=<pageSize>
//
// which answers {"portion": [{"name", "postcode"}...], "total_count": N}.
package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefinder/internal/domain"
)

// maxBodyBytes bounds how much of a response body is read
const maxBodyBytes = 1 << 20

// Client fetches result pages from the store directory
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the endpoint at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:       u,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL composes the request URL for req. The query is trimmed and percent-encoded.
func (c *Client) URL(req domain.FetchRequest) string {
	u := *c.base
	q := u.Query()
	q.Set("q", req.Term())
	q.Set("start_with", strconv.Itoa(req.Offset))
	q.Set("n", strconv.Itoa(req.PageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch retrieves one page. Failures are returned as *Error.
func (c *Client) Fetch(ctx context.Context, req domain.FetchRequest) (domain.ResultPage, error) {
	target := c.URL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.ResultPage{}, &Error{Kind: KindNetwork, URL: target, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.ResultPage{}, &Error{Kind: KindNetwork, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("store directory response",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return domain.ResultPage{}, &Error{Kind: KindStatus, StatusCode: resp.StatusCode, URL: target}
	}

	var page domain.ResultPage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&page); err != nil {
		return domain.ResultPage{}, &Error{Kind: KindDecode, URL: target, Err: err}
	}

	return normalize(req, page, target)
}

// normalize maps the directory's "no search" total of -1 to an empty result
// and rejects pages that would break len(displayed) <= total.
func normalize(req domain.FetchRequest, page domain.ResultPage, target string) (domain.ResultPage, error) {
	if page.TotalCount < 0 {
		page.TotalCount = 0
	}
	if page.Portion == nil {
		page.Portion = []domain.Store{}
	}
	if len(page.Portion) > req.PageSize {
		return domain.ResultPage{}, &Error{Kind: KindProtocol, URL: target,
			Err: fmt.Errorf("page holds %d stores, asked for at most %d", len(page.Portion), req.PageSize)}
	}
	if req.Offset+len(page.Portion) > page.TotalCount {
		return domain.ResultPage{}, &Error{Kind: KindProtocol, URL: target,
			Err: fmt.Errorf("page ends at %d past total %d", req.Offset+len(page.Portion), page.TotalCount)}
	}
	return page, nil
}
