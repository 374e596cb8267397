package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the leaderboard pipeline. Callers can override most of these
// per component; these are the values cmd/ and tests start from.
const (
	// API paging
	DefaultPageSize      = 50
	DefaultStandingsPage = 50

	// Leaderboard request caps
	DefaultRadiusMiles = 50
	MaxRadiusMiles     = 100
	DefaultLimit       = 20
	MaxLimit           = 100
	MaxRangeDays       = 366

	// Fan-out width for per-event standings resolution
	DefaultWorkerWidth = 8

	// Cache TTL policy: finished events never change, live ones do.
	PastEventTTL     = 7 * 24 * time.Hour
	VolatileEventTTL = 60 * time.Second
	StoreTTL         = 24 * time.Hour
	GeocodeTTL       = 24 * time.Hour

	// Shared cache bound
	DefaultCacheSize = 500
)

// Debug reports whether LEADERBOARD_DEBUG is set (e.g. LEADERBOARD_DEBUG=1).
// Library components take debug as constructor config; only cmd/ reads this.
func Debug() bool {
	return os.Getenv("LEADERBOARD_DEBUG") != ""
}

// envDuration returns env value as duration, or default if unset/invalid.
func envDuration(name string, defaultVal time.Duration) time.Duration {
	if s := os.Getenv(name); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

// envInt returns env value as int, or default if unset/invalid.
func envInt(name string, defaultVal int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

// ClientTimeout returns the upstream HTTP client timeout. Env: LEADERBOARD_CLIENT_TIMEOUT.
func ClientTimeout() time.Duration {
	return envDuration("LEADERBOARD_CLIENT_TIMEOUT", 30*time.Second)
}

// WorkerWidth returns the standings fan-out width. Env: LEADERBOARD_WORKERS.
func WorkerWidth() int {
	return envInt("LEADERBOARD_WORKERS", DefaultWorkerWidth)
}
