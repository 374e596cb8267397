package leaderboard

// SortKey selects the leaderboard ordering.
type SortKey string

const (
	SortTotalWins     SortKey = "total_wins"
	SortEventsPlayed  SortKey = "events_played"
	SortWinRate       SortKey = "win_rate"
	SortBestPlacement SortKey = "best_placement"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortTotalWins, SortEventsPlayed, SortWinRate, SortBestPlacement:
		return true
	}
	return false
}

// Params are the options shared by both leaderboard scopes. Dates are
// inclusive calendar dates, YYYY-MM-DD, interpreted at UTC day boundaries.
type Params struct {
	StartDate string
	EndDate   string
	Limit     int     // default 20, capped at 100
	MinEvents int     // minimum events played to appear; default 1
	MinRounds int     // events with fewer total rounds are excluded; 0 = off
	SortBy    SortKey // default total_wins
}

// CityParams scope a leaderboard to events near a city.
type CityParams struct {
	Params
	City        string
	RadiusMiles int // default 50, capped at 100
}

// StoreParams scope a leaderboard to one store's events. StoreName is an
// optional display label; when empty it is resolved from the API.
type StoreParams struct {
	Params
	StoreID   int
	StoreName string
}

// PlayerStats is one player's aggregated line. Rebuilt from zero on every
// request, never persisted.
type PlayerStats struct {
	PlayerName         string  `json:"player_name"`
	TotalWins          int     `json:"total_wins"`
	TotalLosses        int     `json:"total_losses"`
	WinRate            float64 `json:"win_rate"`
	EventsPlayed       int     `json:"events_played"`
	BestPlacement      int     `json:"best_placement"`
	FirstPlaceFinishes int     `json:"first_place_finishes"`
	Placements         []int   `json:"-"`

	nameQuality int // 0 none, 1 account username, 2 event-scoped handle
}

// winRate is wins over games played, 0 when no games were recorded.
func (p *PlayerStats) winRate() float64 {
	games := p.TotalWins + p.TotalLosses
	if games == 0 {
		return 0
	}
	return float64(p.TotalWins) / float64(games)
}

// EventRef identifies one event that contributed standings.
type EventRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// DateRange echoes the requested window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Filters echoes the resolved scope.
type Filters struct {
	Location    string `json:"location,omitempty"`
	Store       string `json:"store,omitempty"`
	RadiusMiles int    `json:"radius_miles,omitempty"`
	MinRounds   int    `json:"min_rounds,omitempty"`
}

// Result is a computed leaderboard. EventsIncluded preserves discovery
// order but carries no ordering contract.
type Result struct {
	Players        []PlayerStats `json:"players"`
	EventsAnalyzed int           `json:"events_analyzed"`
	EventsIncluded []EventRef    `json:"events_included"`
	DateRange      DateRange     `json:"date_range"`
	Filters        Filters       `json:"filters"`
}
