package eventapi

import "time"

// Page is one page of a paginated listing. Pages are 1-based; NextPage is
// nil on the last page.
type Page[T any] struct {
	Results     []T  `json:"results"`
	Count       int  `json:"count"`
	CurrentPage int  `json:"current_page"`
	NextPage    *int `json:"next_page"`
}

// EventSummary is the trimmed event shape returned by event search.
type EventSummary struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	Status   string    `json:"display_status,omitempty"`
}

// Event is the full event record, including the tournament structure when
// the platform has published one. Phases are ordered oldest to newest, and
// so are the rounds inside each phase.
type Event struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	StartsAt         time.Time `json:"starts_at"`
	Cost             *float64  `json:"cost,omitempty"`
	DisplayStatus    string    `json:"display_status"` // upcoming | inProgress | past
	Store            *Store    `json:"store,omitempty"`
	TournamentPhases []Phase   `json:"tournament_phases,omitempty"`
}

// IsPast reports whether the event has finished. Finished events are
// immutable upstream, so their data gets the long cache TTL.
func (e *Event) IsPast() bool {
	return e.DisplayStatus == "past"
}

// TotalRounds sums round counts across all phases.
func (e *Event) TotalRounds() int {
	n := 0
	for _, p := range e.TournamentPhases {
		n += len(p.Rounds)
	}
	return n
}

// Phase is one stage of an event's bracket (e.g. Swiss, Top Cut).
type Phase struct {
	ID     int     `json:"id"`
	Name   string  `json:"name,omitempty"`
	Rounds []Round `json:"rounds"`
}

// Round is one pairing stage within a phase. StandingsStatus is free-form
// upstream; see leaderboard.statusPriority for how values are classified.
type Round struct {
	ID              int    `json:"id"`
	RoundNumber     int    `json:"round_number"`
	StandingsStatus string `json:"standings_status,omitempty"`
}

// Store is a venue that hosts events.
type Store struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StandingEntry is one player's result within one round, as upstream sends
// it. The shape is duck-typed: rank or placement, an explicit win/loss pair
// or a "W-L" record string, an event-scoped display name or a nested player
// account, in any combination. Callers normalize at the boundary rather
// than branching on shape downstream.
type StandingEntry struct {
	Rank       int        `json:"rank,omitempty"`
	Placement  int        `json:"placement,omitempty"`
	Name       string     `json:"name,omitempty"`   // event-scoped display handle
	Player     *PlayerRef `json:"player,omitempty"` // platform account, when linked
	Wins       *int       `json:"wins,omitempty"`
	Losses     *int       `json:"losses,omitempty"`
	Record     string     `json:"record,omitempty"` // "W-L", e.g. "3-1"
	OppWinPct  *float64   `json:"opponent_win_percentage,omitempty"`
	GameWinPct *float64   `json:"game_win_percentage,omitempty"`
}

// PlayerRef is the platform account attached to a standing entry.
type PlayerRef struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
}

// EventFilter selects events for SearchEvents. Exactly one of
// (Latitude/Longitude/RadiusMiles) or StoreID should be set.
type EventFilter struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles int
	StoreID     int
	StartDate   string // YYYY-MM-DD, inclusive
	EndDate     string // YYYY-MM-DD, inclusive
	Statuses    []string
}
