package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"event-leaderboard/internal/config"
	"event-leaderboard/internal/eventapi"
	"event-leaderboard/internal/geocode"
	"event-leaderboard/internal/leaderboard"
)

func main() {
	// Load .env file
	godotenv.Load()

	city := flag.String("city", "", "City to search around, e.g. \"Detroit, MI\"")
	store := flag.Int("store", 0, "Store ID to scope the leaderboard to")
	storeName := flag.String("store-name", "", "Optional store label (skips the store lookup)")
	start := flag.String("start", "", "Start date, YYYY-MM-DD (inclusive)")
	end := flag.String("end", "", "End date, YYYY-MM-DD (inclusive)")
	radius := flag.Int("radius", config.DefaultRadiusMiles, "Search radius in miles (city mode)")
	limit := flag.Int("limit", config.DefaultLimit, "Maximum players to show")
	minEvents := flag.Int("min-events", 1, "Minimum events played to appear")
	minRounds := flag.Int("min-rounds", 0, "Exclude events with fewer total rounds")
	sortBy := flag.String("sort", string(leaderboard.SortTotalWins),
		"Sort key: total_wins | events_played | win_rate | best_placement")
	asJSON := flag.Bool("json", false, "Print the raw result as JSON")
	debug := flag.Bool("debug", config.Debug(), "Verbose progress logging")
	flag.Parse()

	if (*city == "" && *store == 0) || *start == "" || *end == "" {
		fmt.Println("Usage: leaderboard --city=\"Detroit, MI\" --start=2026-01-01 --end=2026-03-31")
		fmt.Println("       leaderboard --store=1234 --start=2026-01-01 --end=2026-03-31")
		flag.PrintDefaults()
		os.Exit(1)
	}

	client := eventapi.NewClient(eventapi.WithDebug(*debug))
	svc := leaderboard.NewService(client, geocode.NewClient(),
		leaderboard.WithWidth(config.WorkerWidth()),
		leaderboard.WithDebug(*debug),
	)

	params := leaderboard.Params{
		StartDate: *start,
		EndDate:   *end,
		Limit:     *limit,
		MinEvents: *minEvents,
		MinRounds: *minRounds,
		SortBy:    leaderboard.SortKey(*sortBy),
	}

	ctx := context.Background()
	var result *leaderboard.Result
	var err error
	if *city != "" {
		result, err = svc.ByCity(ctx, leaderboard.CityParams{
			Params:      params,
			City:        *city,
			RadiusMiles: *radius,
		})
	} else {
		result, err = svc.ByStore(ctx, leaderboard.StoreParams{
			Params:    params,
			StoreID:   *store,
			StoreName: *storeName,
		})
	}
	if err != nil {
		log.Fatalf("Failed to build leaderboard: %v", err)
	}

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	printResult(result)
}

func printResult(result *leaderboard.Result) {
	scope := result.Filters.Location
	if scope == "" {
		scope = result.Filters.Store
	}
	fmt.Printf("\nLeaderboard: %s (%s to %s)\n", scope, result.DateRange.Start, result.DateRange.End)
	fmt.Printf("Events analyzed: %d\n\n", result.EventsAnalyzed)

	fmt.Printf("%-4s %-24s %5s %7s %6s %7s %6s %6s\n",
		"#", "Player", "Wins", "Losses", "Win%", "Events", "Best", "1sts")
	for i, p := range result.Players {
		best := "-"
		if p.BestPlacement > 0 {
			best = fmt.Sprintf("%d", p.BestPlacement)
		}
		fmt.Printf("%-4d %-24s %5d %7d %5.1f%% %7d %6s %6d\n",
			i+1, p.PlayerName, p.TotalWins, p.TotalLosses, p.WinRate*100,
			p.EventsPlayed, best, p.FirstPlaceFinishes)
	}

	fmt.Printf("\nContributing events:\n")
	for _, ev := range result.EventsIncluded {
		fmt.Printf("  %s  %s (id %d)\n", ev.Date, ev.Name, ev.ID)
	}
}
