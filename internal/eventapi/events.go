package eventapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"event-leaderboard/internal/config"
)

// query builds the event-search query string for one page.
func (f EventFilter) query(page, pageSize int) url.Values {
	v := url.Values{}
	if f.StoreID > 0 {
		v.Set("store_id", strconv.Itoa(f.StoreID))
	} else {
		v.Set("latitude", strconv.FormatFloat(f.Latitude, 'f', -1, 64))
		v.Set("longitude", strconv.FormatFloat(f.Longitude, 'f', -1, 64))
		if f.RadiusMiles > 0 {
			v.Set("radius", strconv.Itoa(f.RadiusMiles))
		}
	}
	if f.StartDate != "" {
		v.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("end_date", f.EndDate)
	}
	if len(f.Statuses) > 0 {
		v.Set("status", strings.Join(f.Statuses, ","))
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(pageSize))
	return v
}

// SearchEvents fetches one page of events matching filter. Pages are cached
// briefly; event listings shift as organizers post new events.
func (c *Client) SearchEvents(ctx context.Context, filter EventFilter, page, pageSize int) (*Page[EventSummary], error) {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	q := filter.query(page, pageSize)
	cacheKey := "search:" + q.Encode()
	if cached, ok := c.searches.Get(cacheKey); ok {
		return &cached, nil
	}

	var result Page[EventSummary]
	url := fmt.Sprintf("%s/events?%s", c.baseURL, q.Encode())
	if err := c.doRequest(ctx, url, &result); err != nil {
		return nil, fmt.Errorf("event search failed: %w", err)
	}

	c.searches.Set(cacheKey, result, config.VolatileEventTTL)
	return &result, nil
}

// GetEvent fetches full event details, including tournament phases and
// rounds. Past events are cached for a week, live ones for a minute.
func (c *Client) GetEvent(ctx context.Context, eventID int) (*Event, error) {
	cacheKey := "event:" + strconv.Itoa(eventID)
	if cached, ok := c.events.Get(cacheKey); ok {
		return &cached, nil
	}

	var event Event
	url := fmt.Sprintf("%s/events/%d", c.baseURL, eventID)
	if err := c.doRequest(ctx, url, &event); err != nil {
		return nil, fmt.Errorf("event %d fetch failed: %w", eventID, err)
	}

	c.events.Set(cacheKey, event, eventTTL(event.IsPast()))
	return &event, nil
}

// GetStore fetches a store record. Store names are stable; cached for a day.
func (c *Client) GetStore(ctx context.Context, storeID int) (*Store, error) {
	cacheKey := "store:" + strconv.Itoa(storeID)
	if cached, ok := c.stores.Get(cacheKey); ok {
		return &cached, nil
	}

	var store Store
	url := fmt.Sprintf("%s/stores/%d", c.baseURL, storeID)
	if err := c.doRequest(ctx, url, &store); err != nil {
		return nil, fmt.Errorf("store %d fetch failed: %w", storeID, err)
	}

	c.stores.Set(cacheKey, store, config.StoreTTL)
	return &store, nil
}
