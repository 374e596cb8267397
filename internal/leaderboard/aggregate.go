package leaderboard

import (
	"sort"
	"strconv"
	"strings"

	"event-leaderboard/internal/eventapi"
)

// unknownKey marks entries that carry no usable identity. They cannot be
// attributed to anyone and are skipped.
const unknownKey = "unknown"

// standing is the normalized internal form of a duck-typed upstream entry.
// All shape-branching happens in normalizeEntry; aggregation only ever sees
// this record.
type standing struct {
	key         string // stable player key
	placement   int    // 1-based; 0 when upstream sent neither rank nor placement
	wins        int
	losses      int
	eventName   string // event-scoped display handle, may be empty
	accountName string // cross-event account handle, may be empty
}

// parseRecord parses a "W-L" string like "3-1". Anything unparseable counts
// as 0-0 rather than failing the entry.
func parseRecord(record string) (wins, losses int) {
	parts := strings.SplitN(strings.TrimSpace(record), "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0
	}
	l, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0
	}
	return w, l
}

// playerKey derives a stable identity for an entry: the numeric platform id
// when the account is linked, otherwise the best available display handle.
func playerKey(e eventapi.StandingEntry) string {
	if e.Player != nil && e.Player.ID > 0 {
		return "player_id:" + strconv.Itoa(e.Player.ID)
	}
	if name := strings.TrimSpace(e.Name); name != "" {
		return "name:" + strings.ToLower(name)
	}
	if e.Player != nil {
		if username := strings.TrimSpace(e.Player.Username); username != "" {
			return "name:" + strings.ToLower(username)
		}
	}
	return unknownKey
}

// normalizeEntry folds the overlapping upstream fields into one record.
// Field priority: rank over placement; explicit wins/losses over the
// "W-L" record string.
func normalizeEntry(e eventapi.StandingEntry) standing {
	s := standing{
		key:       playerKey(e),
		placement: e.Rank,
		eventName: strings.TrimSpace(e.Name),
	}
	if s.placement <= 0 {
		s.placement = e.Placement
	}
	if e.Player != nil {
		s.accountName = strings.TrimSpace(e.Player.Username)
	}
	if e.Wins != nil || e.Losses != nil {
		if e.Wins != nil {
			s.wins = *e.Wins
		}
		if e.Losses != nil {
			s.losses = *e.Losses
		}
	} else {
		s.wins, s.losses = parseRecord(e.Record)
	}
	return s
}

// aggregateStandings folds per-event standings into per-player totals.
// Output order follows first appearance; the caller sorts. The fold is
// order-independent apart from that, so re-ordering input events cannot
// change totals.
func aggregateStandings(events []*EventStandings) []*PlayerStats {
	byKey := make(map[string]*PlayerStats)
	var order []string

	for _, es := range events {
		for _, entry := range es.Standings {
			s := normalizeEntry(entry)
			if s.key == unknownKey {
				continue
			}

			p, ok := byKey[s.key]
			if !ok {
				p = &PlayerStats{BestPlacement: 0}
				byKey[s.key] = p
				order = append(order, s.key)
			}

			p.TotalWins += s.wins
			p.TotalLosses += s.losses
			p.EventsPlayed++
			if s.placement > 0 {
				p.Placements = append(p.Placements, s.placement)
			}

			// Event-scoped handles read better than account usernames;
			// once seen, never regress.
			if s.eventName != "" && p.nameQuality < 2 {
				p.PlayerName = s.eventName
				p.nameQuality = 2
			} else if s.accountName != "" && p.nameQuality < 1 {
				p.PlayerName = s.accountName
				p.nameQuality = 1
			}
		}
	}

	players := make([]*PlayerStats, 0, len(order))
	for _, key := range order {
		p := byKey[key]
		finalizeStats(p)
		players = append(players, p)
	}
	return players
}

// finalizeStats fills the derived fields from the placement list.
func finalizeStats(p *PlayerStats) {
	p.WinRate = p.winRate()
	p.BestPlacement = 0
	p.FirstPlaceFinishes = 0
	for _, pl := range p.Placements {
		if p.BestPlacement == 0 || pl < p.BestPlacement {
			p.BestPlacement = pl
		}
		if pl == 1 {
			p.FirstPlaceFinishes++
		}
	}
}

// bestPlacementForSort treats "never placed" as worse than any placement.
func bestPlacementForSort(p *PlayerStats) int {
	if p.BestPlacement == 0 {
		return int(^uint(0) >> 1)
	}
	return p.BestPlacement
}

// sortPlayers orders players by the requested key with deterministic
// tie-breaks, so the same event set always produces the same board.
func sortPlayers(players []*PlayerStats, key SortKey) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		switch key {
		case SortEventsPlayed:
			if a.EventsPlayed != b.EventsPlayed {
				return a.EventsPlayed > b.EventsPlayed
			}
		case SortWinRate:
			if a.WinRate != b.WinRate {
				return a.WinRate > b.WinRate
			}
		case SortBestPlacement:
			if bestPlacementForSort(a) != bestPlacementForSort(b) {
				return bestPlacementForSort(a) < bestPlacementForSort(b)
			}
			if a.TotalWins != b.TotalWins {
				return a.TotalWins > b.TotalWins
			}
			return a.TotalLosses < b.TotalLosses
		}
		// total_wins, and the shared tail for events_played / win_rate.
		if a.TotalWins != b.TotalWins {
			return a.TotalWins > b.TotalWins
		}
		if a.TotalLosses != b.TotalLosses {
			return a.TotalLosses < b.TotalLosses
		}
		return bestPlacementForSort(a) < bestPlacementForSort(b)
	})
}
