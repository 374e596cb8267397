package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupParsesNominatimHit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "Detroit, MI" {
			t.Errorf("q = %q", q)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		fmt.Fprint(w, `[{"lat": "42.3315509", "lon": "-83.0466403", "display_name": "Detroit, Wayne County, Michigan, United States"}]`)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	loc, err := client.Lookup(context.Background(), "Detroit, MI")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if loc == nil {
		t.Fatal("Lookup returned nil for a known city")
	}
	if loc.Lat < 42.3 || loc.Lat > 42.4 {
		t.Errorf("Lat = %f", loc.Lat)
	}
	if loc.Lon > -83.0 || loc.Lon < -83.1 {
		t.Errorf("Lon = %f", loc.Lon)
	}
	if loc.DisplayName == "" {
		t.Error("empty DisplayName")
	}
}

func TestLookupNotFoundIsNilNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	loc, err := client.Lookup(context.Background(), "Xyzzyville")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if loc != nil {
		t.Errorf("want nil for unknown city, got %+v", loc)
	}
}

func TestLookupCachesResult(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[{"lat": "40.7", "lon": "-74.0", "display_name": "New York"}]`)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	for i := 0; i < 3; i++ {
		if _, err := client.Lookup(context.Background(), "New York"); err != nil {
			t.Fatalf("Lookup call %d: %v", i+1, err)
		}
	}
	if calls != 1 {
		t.Errorf("upstream called %d times, want 1", calls)
	}
}

func TestLookupTransportErrorIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	if _, err := client.Lookup(context.Background(), "Detroit"); err == nil {
		t.Fatal("want error on upstream 500")
	}
}
