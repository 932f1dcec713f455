// Package quotable fetches motivational quotes from a quotable-compatible API.
package quotable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"habitme/internal/domain"
)

// DefaultURL returns a single random quote tagged for motivation.
const DefaultURL = "https://api.quotable.io/random?tags=motivation|success|inspiration&maxLength=150"

// Client implements domain.QuoteSource over HTTP.
type Client struct {
	url  string
	http *http.Client
}

var _ domain.QuoteSource = (*Client)(nil)

// New returns a client for url with the given request timeout.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

// RandomQuote fetches one quote.
func (c *Client) RandomQuote(ctx context.Context) (domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Quote{}, fmt.Errorf("fetch quote: unexpected status %d", resp.StatusCode)
	}

	var q domain.Quote
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&q); err != nil {
		return domain.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	return q, nil
}
