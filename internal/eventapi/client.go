// Package eventapi is a client for the tournament platform's REST API.
// The API is undocumented, so the types here reflect observed responses:
// 1-based page numbers, snake_case fields, and standing entries whose shape
// varies by event format.
package eventapi

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"event-leaderboard/internal/cache"
	"event-leaderboard/internal/config"
)

const (
	defaultBaseURL = "https://play.tabletopcircuit.com/api"

	maxRetries  = 3
	backoffBase = 500 * time.Millisecond
)

// Client is a tournament-platform API client with retry/backoff and an
// in-memory TTL cache over hot reads. GETs are idempotent upstream, so
// retrying transient failures is safe.
type Client struct {
	baseURL    string
	httpClient *http.Client

	events    *cache.Cache[Event]
	standings *cache.Cache[Page[StandingEntry]]
	searches  *cache.Cache[Page[EventSummary]]
	stores    *cache.Cache[Store]

	debug  bool
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDebug enables request logging.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// WithLogger overrides the default logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client against the production API.
func NewClient(opts ...Option) *Client {
	return NewClientWithURL(defaultBaseURL, opts...)
}

// NewClientWithURL creates a client with a custom base URL.
func NewClientWithURL(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.ClientTimeout(),
		},
		events:    cache.New[Event](config.DefaultCacheSize),
		standings: cache.New[Page[StandingEntry]](config.DefaultCacheSize),
		searches:  cache.New[Page[EventSummary]](config.DefaultCacheSize),
		stores:    cache.New[Store](config.DefaultCacheSize),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryable reports whether a status code is worth another attempt.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// doRequest GETs url and decodes the JSON body into result, retrying
// transport errors and 429/502/503/504 with exponential backoff. A 429's
// Retry-After header, when present, overrides the computed backoff.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	var retryAfter time.Duration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoffBase << (attempt - 1)
			if retryAfter > 0 {
				wait = retryAfter
				retryAfter = 0
			}
			if c.debug {
				c.logger.Printf("[API] retry %d/%d for %s in %s (%v)", attempt, maxRetries, url, wait, lastErr)
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if retryable(resp.StatusCode) {
			lastErr = fmt.Errorf("API returned status %d", resp.StatusCode)
			if resp.StatusCode == http.StatusTooManyRequests {
				if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
					retryAfter = time.Duration(secs) * time.Second
				}
			}
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("API returned 404 Not Found: %s", url)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}

		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse API response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// eventTTL picks the cache TTL for event-scoped data: finished events are
// immutable, live and upcoming ones change under us.
func eventTTL(past bool) time.Duration {
	if past {
		return config.PastEventTTL
	}
	return config.VolatileEventTTL
}
