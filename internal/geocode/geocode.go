// Package geocode resolves city names to coordinates via the Nominatim
// search API.
package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"event-leaderboard/internal/cache"
	"event-leaderboard/internal/config"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Location is a resolved city.
type Location struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// nominatimResult is one search hit. Nominatim sends coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client looks up cities, caching results for a day.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache[Location]
}

// NewClient creates a geocoding client against Nominatim.
func NewClient() *Client {
	return NewClientWithURL(defaultBaseURL)
}

// NewClientWithURL creates a client with a custom base URL.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New[Location](config.DefaultCacheSize),
	}
}

// Lookup resolves a city name. It returns (nil, nil) when the name is not
// geocodable, which is distinct from a transport error.
func (c *Client) Lookup(ctx context.Context, city string) (*Location, error) {
	if cached, ok := c.cache.Get(city); ok {
		return &cached, nil
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "event-leaderboard/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var hits []nominatimResult
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", hits[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", hits[0].Lon, err)
	}

	loc := Location{Lat: lat, Lon: lon, DisplayName: hits[0].DisplayName}
	c.cache.Set(city, loc, config.GeocodeTTL)
	return &loc, nil
}
