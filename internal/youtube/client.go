// Package youtube wraps the external YouTube endpoints the service
// depends on: the Data API v3 (search, videos, channels) and the
// autocomplete suggestion endpoint. Responses are validated into typed
// structs at this boundary; counts arrive as strings and are normalized
// to non-negative integers here.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIBase    = "https://www.googleapis.com/youtube/v3"
	defaultSuggestURL = "https://suggestqueries.google.com/complete/search"

	userAgent = "tuberank/1.0"
)

// Adapter error sentinels.
var (
	ErrVideoNotFound   = errors.New("video not found")
	ErrChannelNotFound = errors.New("channel not found")
)

// Config configures a Client.
type Config struct {
	APIKey string
	Region string // regionCode for search, e.g. "US"

	// RPS limits outbound API calls client-side. Zero disables limiting.
	RPS float64

	// Overridable for tests.
	APIBase    string
	SuggestURL string
	HTTPClient *http.Client
}

// Client calls the external YouTube endpoints. Safe for concurrent use.
type Client struct {
	apiKey     string
	region     string
	apiBase    string
	suggestURL string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a client. The HTTP client enforces its own timeout so no
// single external call can stall a caller indefinitely.
func New(cfg Config) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		region:     cfg.Region,
		apiBase:    cfg.APIBase,
		suggestURL: cfg.SuggestURL,
		httpClient: cfg.HTTPClient,
	}
	if c.apiBase == "" {
		c.apiBase = defaultAPIBase
	}
	if c.suggestURL == "" {
		c.suggestURL = defaultSuggestURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return c
}

// get performs a rate-limited GET and returns the response, rejecting
// non-200 statuses with a truncated body excerpt.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("youtube API status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
