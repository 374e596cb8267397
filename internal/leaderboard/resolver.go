package leaderboard

import (
	"context"
	"log"
	"sort"
	"strings"

	"event-leaderboard/internal/config"
	"event-leaderboard/internal/eventapi"
)

// Standings-authority classes, in preference order.
const (
	statusAuthoritative = 0
	statusNeutral       = 1
	statusProvisional   = 2
)

// statusPriority classifies a round's standings status. Upstream values
// are free-form; unknown or absent statuses land in the neutral class.
func statusPriority(status string) int {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "final", "published", "closed":
		return statusAuthoritative
	case "pending", "in_progress":
		return statusProvisional
	default:
		return statusNeutral
	}
}

// EventStandings pairs an event with the standings of its most
// authoritative round.
type EventStandings struct {
	Event     *eventapi.Event
	Standings []eventapi.StandingEntry
}

// Resolver finds the round whose standings best represent an event's
// result.
type Resolver struct {
	client   *eventapi.Client
	pageSize int
	debug    bool
	logger   *log.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverDebug enables per-round logging.
func WithResolverDebug(debug bool) ResolverOption {
	return func(r *Resolver) { r.debug = debug }
}

// WithResolverPageSize overrides the standings page size (default 50).
func WithResolverPageSize(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// NewResolver creates a resolver over client.
func NewResolver(client *eventapi.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:   client,
		pageSize: config.DefaultStandingsPage,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// candidate is one round flattened out of the phase structure.
type candidate struct {
	round    eventapi.Round
	phaseIdx int
}

// Resolve returns the event plus the standings of its best round, or
// (nil, nil) when the event has no rounds or no round has data yet.
//
// Rounds are tried authoritative-first, then later phases (top cut beats
// swiss), then higher round numbers. Upstream sometimes exposes provisional
// round placeholders with no entries next to a genuinely finished earlier
// round; picking the numerically last round would return an empty result,
// so the walk keeps going until a round actually yields entries.
func (r *Resolver) Resolve(ctx context.Context, eventID int) (*EventStandings, error) {
	event, err := r.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(event.TournamentPhases) == 0 {
		return nil, nil
	}

	var candidates []candidate
	for pi, phase := range event.TournamentPhases {
		for _, round := range phase.Rounds {
			candidates = append(candidates, candidate{round: round, phaseIdx: pi})
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		ap, bp := statusPriority(a.round.StandingsStatus), statusPriority(b.round.StandingsStatus)
		if ap != bp {
			return ap < bp
		}
		if a.phaseIdx != b.phaseIdx {
			return a.phaseIdx > b.phaseIdx
		}
		return a.round.RoundNumber > b.round.RoundNumber
	})

	for _, c := range candidates {
		page, err := r.client.GetRoundStandings(ctx, c.round.ID, 1, r.pageSize, event.IsPast())
		if err != nil {
			// A dead round endpoint shouldn't sink the event; try the next.
			if r.debug {
				r.logger.Printf("[Resolver] event %d round %d fetch failed: %v", eventID, c.round.ID, err)
			}
			continue
		}
		if len(page.Results) == 0 {
			continue
		}
		if r.debug {
			r.logger.Printf("[Resolver] event %d resolved via phase %d round %d (%d entries)",
				eventID, c.phaseIdx, c.round.RoundNumber, len(page.Results))
		}
		return &EventStandings{Event: event, Standings: page.Results}, nil
	}

	return nil, nil
}
