package models

import "encoding/json"

// Event is the canonical event shape returned to callers regardless of which
// payload flavor the upstream produced. Optional fields that are absent in
// the raw payload are explicit nulls or empty containers, never missing.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker holds one book's markets for an event
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market holds the outcomes of one market type (h2h, spreads, totals, props)
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single bettable option. Point is nil for markets without a
// line (moneyline) and stays an explicit null in JSON output.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point"`
}

// ListingOptions contains parameters for fetching a sport-scoped odds listing
type ListingOptions struct {
	Sport      string
	Markets    []string
	Regions    []string
	OddsFormat string
	DateFormat string
}

// EventMarketsOptions contains parameters for fetching odds scoped to a
// single event (used for props and other per-event markets)
type EventMarketsOptions struct {
	Sport      string
	EventID    string
	Markets    []string
	Regions    []string
	OddsFormat string
	DateFormat string
}

// FetchResult carries the raw upstream payload together with per-call usage
// telemetry. Telemetry is never cached; cached payloads come back with the
// local sentinel instead.
type FetchResult struct {
	Payload   json.RawMessage `json:"payload"`
	Telemetry Telemetry       `json:"telemetry"`
}
