package eventapi

import (
	"context"
	"fmt"

	"event-leaderboard/internal/config"
)

// GetRoundStandings fetches one page of standings for a round. eventPast
// selects the cache TTL: standings of finished events never change.
func (c *Client) GetRoundStandings(ctx context.Context, roundID, page, pageSize int, eventPast bool) (*Page[StandingEntry], error) {
	if pageSize <= 0 {
		pageSize = config.DefaultStandingsPage
	}
	cacheKey := fmt.Sprintf("standings:%d:%d:%d", roundID, page, pageSize)
	if cached, ok := c.standings.Get(cacheKey); ok {
		return &cached, nil
	}

	var result Page[StandingEntry]
	url := fmt.Sprintf("%s/rounds/%d/standings?page=%d&page_size=%d", c.baseURL, roundID, page, pageSize)
	if err := c.doRequest(ctx, url, &result); err != nil {
		return nil, fmt.Errorf("standings for round %d failed: %w", roundID, err)
	}

	c.standings.Set(cacheKey, result, eventTTL(eventPast))
	return &result, nil
}
