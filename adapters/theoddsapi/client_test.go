package theoddsapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/XavierBriggs/Hermes/adapters/theoddsapi"
	"github.com/XavierBriggs/Hermes/internal/cache"
	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*theoddsapi.Client, *httptest.Server, *cache.Memory) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := cache.NewMemory(time.Minute)
	client := theoddsapi.NewClient(theoddsapi.Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Cache:   store,
		Logger:  zerolog.Nop(),
	})
	return client, server, store
}

func TestFetchListing_TelemetryFromHeaders(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/sports/basketball_nba/odds" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("apiKey = %q, want test-key", got)
		}
		w.Header().Set("x-requests-used", "42")
		w.Header().Set("x-requests-remaining", "458")
		w.Header().Set("x-requests-last", "1")
		w.Write([]byte(`[]`))
	})

	result, err := client.FetchListing(context.Background(), &models.ListingOptions{
		Sport:   "basketball_nba",
		Markets: []string{"h2h", "spreads"},
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if result.Telemetry.Source != models.TelemetrySourceUpstream {
		t.Errorf("source = %q, want upstream", result.Telemetry.Source)
	}
	if result.Telemetry.RequestsUsed != 42 || result.Telemetry.RequestsRemaining != 458 || result.Telemetry.RequestsLast != 1 {
		t.Errorf("telemetry = %+v", result.Telemetry)
	}
	if string(result.Payload) != `[]` {
		t.Errorf("payload = %s", result.Payload)
	}
}

func TestFetch_DefaultsApplied(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("regions") != "us" {
			t.Errorf("regions = %q, want us", q.Get("regions"))
		}
		if q.Get("oddsFormat") != "american" {
			t.Errorf("oddsFormat = %q, want american", q.Get("oddsFormat"))
		}
		if q.Get("dateFormat") != "iso" {
			t.Errorf("dateFormat = %q, want iso", q.Get("dateFormat"))
		}
		w.Write([]byte(`[]`))
	})

	if _, err := client.FetchListing(context.Background(), &models.ListingOptions{Sport: "basketball_nba"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
}

func TestFetch_CacheHitSkipsUpstream(t *testing.T) {
	var calls int64
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("x-requests-used", "7")
		w.Write([]byte(`[{"id":"evt1"}]`))
	})

	opts := &models.ListingOptions{Sport: "basketball_nba", Markets: []string{"h2h"}}
	ctx := context.Background()

	first, err := client.FetchListing(ctx, opts)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if first.Telemetry.Source != models.TelemetrySourceUpstream {
		t.Errorf("first source = %q, want upstream", first.Telemetry.Source)
	}

	second, err := client.FetchListing(ctx, opts)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("upstream called %d times, want 1", got)
	}
	if second.Telemetry.Source != models.TelemetrySourceLocal {
		t.Errorf("cached source = %q, want local", second.Telemetry.Source)
	}
	if second.Telemetry.RequestsUsed != 0 {
		t.Errorf("cached telemetry must be the local sentinel, got %+v", second.Telemetry)
	}
	if string(second.Payload) != string(first.Payload) {
		t.Error("cached payload differs from original")
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	client, _, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	})

	_, err := client.FetchListing(context.Background(), &models.ListingOptions{Sport: "basketball_nba"})

	var upstreamErr *theoddsapi.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", upstreamErr.StatusCode)
	}
	if !strings.Contains(upstreamErr.Body, "invalid api key") {
		t.Errorf("body = %q", upstreamErr.Body)
	}
	if store.Len() != 0 {
		t.Error("failed responses must not be cached")
	}
}

func TestFetch_UpstreamErrorBodyTruncated(t *testing.T) {
	huge := strings.Repeat("x", 10_000)
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(huge))
	})

	_, err := client.FetchListing(context.Background(), &models.ListingOptions{Sport: "basketball_nba"})

	var upstreamErr *theoddsapi.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if len(upstreamErr.Body) > 2048 {
		t.Errorf("body length = %d, want at most 2048", len(upstreamErr.Body))
	}
}

func TestFetch_MissingCredential(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := theoddsapi.NewClient(theoddsapi.Config{
		BaseURL: server.URL,
		Cache:   cache.NewMemory(time.Minute),
		Logger:  zerolog.Nop(),
	})

	_, err := client.FetchListing(context.Background(), &models.ListingOptions{Sport: "basketball_nba"})
	if !errors.Is(err, theoddsapi.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if called {
		t.Error("no upstream request may be made without a credential")
	}
}

func TestFetch_MalformedResponse(t *testing.T) {
	client, _, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"truncated": `))
	})

	_, err := client.FetchListing(context.Background(), &models.ListingOptions{Sport: "basketball_nba"})

	var malformed *theoddsapi.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("invalid payloads must not be cached")
	}
}

func TestFetch_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := theoddsapi.NewClient(theoddsapi.Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Cache:   cache.NewMemory(time.Minute),
		Logger:  zerolog.Nop(),
	})

	_, err := client.FetchListing(context.Background(), &models.ListingOptions{Sport: "basketball_nba"})

	var unavailable *theoddsapi.UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

func TestFetchEventMarkets_Path(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/sports/basketball_nba/events/evt1/odds" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("markets"); got != "player_points,player_assists" {
			t.Errorf("markets = %q", got)
		}
		w.Write([]byte(`{"id":"evt1"}`))
	})

	_, err := client.FetchEventMarkets(context.Background(), &models.EventMarketsOptions{
		Sport:   "basketball_nba",
		EventID: "evt1",
		Markets: []string{"player_points", "player_assists"},
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
}
