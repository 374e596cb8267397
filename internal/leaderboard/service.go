// Package leaderboard builds cross-event player leaderboards from the
// tournament platform's per-event standings.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/bits-and-blooms/bloom/v3"

	"event-leaderboard/internal/config"
	"event-leaderboard/internal/eventapi"
	"event-leaderboard/internal/geocode"
	"event-leaderboard/internal/pool"
)

const dateLayout = "2006-01-02"

// errNoStandings marks events the resolver found empty; it stays inside the
// fan-out and is never surfaced.
var errNoStandings = errors.New("no standings available")

// Geocoder resolves a city name to coordinates. A nil location with nil
// error means the name is not geocodable.
type Geocoder interface {
	Lookup(ctx context.Context, city string) (*geocode.Location, error)
}

// Service computes leaderboards. Construct one per client/cache pair; it
// holds no request state of its own.
type Service struct {
	client   *eventapi.Client
	geocoder Geocoder
	resolver *Resolver
	width    int
	debug    bool
	logger   *log.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithWidth sets the standings fan-out width (default 8).
func WithWidth(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.width = n
		}
	}
}

// WithDebug enables progress logging.
func WithDebug(debug bool) ServiceOption {
	return func(s *Service) { s.debug = debug }
}

// WithLogger overrides the default logger.
func WithLogger(l *log.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a leaderboard service.
func NewService(client *eventapi.Client, geocoder Geocoder, opts ...ServiceOption) *Service {
	s := &Service{
		client:   client,
		geocoder: geocoder,
		resolver: NewResolver(client),
		width:    config.DefaultWorkerWidth,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver.debug = s.debug
	s.resolver.logger = s.logger
	return s
}

// validateRange parses and checks the date window before any I/O happens.
func validateRange(startDate, endDate string) (start, end time.Time, err error) {
	start, perr := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if perr != nil {
		return start, end, &ValidationError{Msg: fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", startDate)}
	}
	end, perr = time.ParseInLocation(dateLayout, endDate, time.UTC)
	if perr != nil {
		return start, end, &ValidationError{Msg: fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", endDate)}
	}
	if start.After(end) {
		return start, end, &ValidationError{Msg: "start date must not be after end date"}
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > config.MaxRangeDays {
		return start, end, &ValidationError{Msg: fmt.Sprintf("date range spans %d days, maximum is %d", days, config.MaxRangeDays)}
	}
	return start, end, nil
}

// normalize applies defaults and caps shared by both scopes.
func (p *Params) normalize() {
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	if p.MinEvents <= 0 {
		p.MinEvents = 1
	}
	if p.SortBy == "" {
		p.SortBy = SortTotalWins
	}
}

// ByCity computes the leaderboard for events within a radius of a city.
func (s *Service) ByCity(ctx context.Context, params CityParams) (*Result, error) {
	if _, _, err := validateRange(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}
	if !params.SortBy.Valid() && params.SortBy != "" {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown sort key %q", params.SortBy)}
	}
	params.normalize()
	if params.RadiusMiles <= 0 {
		params.RadiusMiles = config.DefaultRadiusMiles
	}
	if params.RadiusMiles > config.MaxRadiusMiles {
		params.RadiusMiles = config.MaxRadiusMiles
	}

	loc, err := s.geocoder.Lookup(ctx, params.City)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", params.City, err)
	}
	if loc == nil {
		return nil, fmt.Errorf("%q: %w", params.City, ErrLocationNotFound)
	}

	filter := eventapi.EventFilter{
		Latitude:    loc.Lat,
		Longitude:   loc.Lon,
		RadiusMiles: params.RadiusMiles,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Statuses:    []string{"past", "inProgress"},
	}
	filters := Filters{
		Location:    loc.DisplayName,
		RadiusMiles: params.RadiusMiles,
		MinRounds:   params.MinRounds,
	}
	return s.build(ctx, filter, params.Params, filters)
}

// ByStore computes the leaderboard for one store's events.
func (s *Service) ByStore(ctx context.Context, params StoreParams) (*Result, error) {
	if _, _, err := validateRange(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}
	if !params.SortBy.Valid() && params.SortBy != "" {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown sort key %q", params.SortBy)}
	}
	if params.StoreID <= 0 {
		return nil, &ValidationError{Msg: "store id must be a positive integer"}
	}
	params.normalize()

	label := params.StoreName
	if label == "" {
		if store, err := s.client.GetStore(ctx, params.StoreID); err == nil {
			label = store.Name
		} else if s.debug {
			s.logger.Printf("[Aggregator] store %d label lookup failed: %v", params.StoreID, err)
		}
	}
	if label == "" {
		label = "store #" + strconv.Itoa(params.StoreID)
	}

	filter := eventapi.EventFilter{
		StoreID:   params.StoreID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Statuses:  []string{"past", "inProgress"},
	}
	filters := Filters{
		Store:     label,
		MinRounds: params.MinRounds,
	}
	return s.build(ctx, filter, params.Params, filters)
}

// discoverEvents pages through every matching event. Page windows can shift
// while we read them, so IDs are deduped with a bloom filter the same way
// the collector dedupes crawled IDs. A listing-page failure aborts the whole
// discovery: a partial event list would silently under-report totals.
func (s *Service) discoverEvents(ctx context.Context, filter eventapi.EventFilter) ([]eventapi.EventSummary, error) {
	seen := bloom.NewWithEstimates(10000, 0.001)
	var all []eventapi.EventSummary

	for page := 1; ; page++ {
		result, err := s.client.SearchEvents(ctx, filter, page, config.DefaultPageSize)
		if err != nil {
			return nil, err
		}
		for _, ev := range result.Results {
			id := strconv.Itoa(ev.ID)
			if seen.TestString(id) {
				continue
			}
			seen.AddString(id)
			all = append(all, ev)
		}
		if s.debug {
			s.logger.Printf("[Aggregator] discovery page %d: %d results (%d/%d total)",
				page, len(result.Results), len(all), result.Count)
		}
		if len(result.Results) < config.DefaultPageSize {
			break
		}
		if result.Count > 0 && len(all) >= result.Count {
			break
		}
		if result.NextPage == nil {
			break
		}
	}
	return all, nil
}

// build runs the shared pipeline: discover -> resolve standings -> filter ->
// aggregate -> sort -> truncate.
func (s *Service) build(ctx context.Context, filter eventapi.EventFilter, params Params, filters Filters) (*Result, error) {
	summaries, err := s.discoverEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("event discovery failed: %w", err)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("between %s and %s: %w", params.StartDate, params.EndDate, ErrNoEventsFound)
	}
	if s.debug {
		s.logger.Printf("[Aggregator] resolving standings for %d events (width %d)", len(summaries), s.width)
	}

	resolved := pool.Run(ctx, summaries, s.width, func(ctx context.Context, ev eventapi.EventSummary) (EventStandings, error) {
		es, err := s.resolver.Resolve(ctx, ev.ID)
		if err != nil {
			return EventStandings{}, err
		}
		if es == nil {
			return EventStandings{}, errNoStandings
		}
		return *es, nil
	})

	var contributing []*EventStandings
	for _, r := range resolved {
		if r == nil {
			continue
		}
		if params.MinRounds > 0 && r.Event.TotalRounds() < params.MinRounds {
			continue
		}
		contributing = append(contributing, r)
	}

	players := aggregateStandings(contributing)

	filtered := players[:0]
	for _, p := range players {
		if p.EventsPlayed >= params.MinEvents {
			filtered = append(filtered, p)
		}
	}

	sortPlayers(filtered, params.SortBy)
	if len(filtered) > params.Limit {
		filtered = filtered[:params.Limit]
	}

	out := make([]PlayerStats, len(filtered))
	for i, p := range filtered {
		out[i] = *p
	}

	included := make([]EventRef, len(contributing))
	for i, es := range contributing {
		included[i] = EventRef{
			ID:   es.Event.ID,
			Name: es.Event.Name,
			Date: es.Event.StartsAt.UTC().Format(dateLayout),
		}
	}

	return &Result{
		Players:        out,
		EventsAnalyzed: len(contributing),
		EventsIncluded: included,
		DateRange:      DateRange{Start: params.StartDate, End: params.EndDate},
		Filters:        filters,
	}, nil
}
