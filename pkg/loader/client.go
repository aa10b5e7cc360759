package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/polisai/commission-board/pkg/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// CommissionsPath is the API endpoint that lists commissions.
const CommissionsPath = "/api/commissions"

// FetchFunc performs the request step of a load.
type FetchFunc func(ctx context.Context) ([]domain.Commission, error)

// Client is a JSON HTTP client for the commissions API.
type Client struct {
	base string
	http *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used
// as-is, without tracing instrumentation.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// NewClient creates a client for the API rooted at base (for example
// http://127.0.0.1:8000). An empty base yields same-origin relative URLs.
func NewClient(base string, opts ...ClientOption) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the full list endpoint.
func (c *Client) URL() string {
	return c.base + CommissionsPath
}

// List issues GET /api/commissions and decodes the JSON array. A JSON null
// body decodes to a nil slice.
func (c *Client) List(ctx context.Context) ([]domain.Commission, error) {
	u := c.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &domain.FetchError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var out []domain.Commission
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.FetchError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return out, nil
}
