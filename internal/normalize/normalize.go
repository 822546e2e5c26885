// Package normalize reshapes raw upstream payloads into the canonical
// event/bookmaker/market/outcome schema. Upstream response flavors disagree
// on field naming, so each logical field is extracted from an explicit,
// ordered candidate list rather than ad hoc probing.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// Candidate field names per logical field, tried in priority order. The
// second and later names cover the provider's older response flavor
// (sites/site_key/site_nice) and camelCase variants.
var (
	eventIDFields      = []string{"id", "event_id", "key"}
	sportKeyFields     = []string{"sport_key", "sport"}
	commenceTimeFields = []string{"commence_time", "commenceTime", "start_time"}
	homeTeamFields     = []string{"home_team", "homeTeam", "home"}
	awayTeamFields     = []string{"away_team", "awayTeam", "away"}
	bookmakersFields   = []string{"bookmakers", "sites"}
	bookKeyFields      = []string{"key", "site_key"}
	bookTitleFields    = []string{"title", "site_nice"}
	marketsFields      = []string{"markets"}
	marketKeyFields    = []string{"key"}
	outcomesFields     = []string{"outcomes"}
	outcomeNameFields  = []string{"name", "label"}
	priceFields        = []string{"price", "odds"}
	pointFields        = []string{"point", "handicap"}
)

// DecodeEvents unmarshals a raw listing payload and normalizes every event.
// Input order is preserved throughout.
func DecodeEvents(data []byte) ([]models.Event, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode events payload: %w", err)
	}
	return Events(raw)
}

// DecodeEvent unmarshals a raw single-event payload and normalizes it
func DecodeEvent(data []byte) (models.Event, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Event{}, fmt.Errorf("decode event payload: %w", err)
	}

	events, err := Events([]any{raw})
	if err != nil {
		return models.Event{}, err
	}
	return events[0], nil
}

// Events normalizes a decoded raw event list. Missing optional fields become
// explicit zero values, absent nested collections become empty slices, and
// only structurally invalid input fails, identifying the offending index.
func Events(raw []any) ([]models.Event, error) {
	events := make([]models.Event, 0, len(raw))

	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedEventError{Index: i, Reason: "event is not an object"}
		}

		event, err := eventFromMap(obj, i)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func eventFromMap(raw map[string]any, index int) (models.Event, error) {
	id, _ := firstString(raw, eventIDFields)
	if id == "" {
		return models.Event{}, &MalformedEventError{Index: index, Reason: "missing event id"}
	}

	event := models.Event{
		ID:         id,
		Bookmakers: []models.Bookmaker{},
	}
	event.SportKey, _ = firstString(raw, sportKeyFields)
	event.CommenceTime, _ = firstStringish(raw, commenceTimeFields)
	event.HomeTeam, _ = firstString(raw, homeTeamFields)
	event.AwayTeam, _ = firstString(raw, awayTeamFields)

	books, _ := firstSlice(raw, bookmakersFields)
	for _, b := range books {
		obj, ok := b.(map[string]any)
		if !ok {
			return models.Event{}, &MalformedEventError{Index: index, Reason: "bookmaker is not an object"}
		}

		bookmaker, err := bookmakerFromMap(obj, index)
		if err != nil {
			return models.Event{}, err
		}
		event.Bookmakers = append(event.Bookmakers, bookmaker)
	}

	return event, nil
}

func bookmakerFromMap(raw map[string]any, index int) (models.Bookmaker, error) {
	bookmaker := models.Bookmaker{
		Markets: []models.Market{},
	}
	bookmaker.Key, _ = firstString(raw, bookKeyFields)
	bookmaker.Title, _ = firstString(raw, bookTitleFields)

	markets, _ := firstSlice(raw, marketsFields)
	for _, m := range markets {
		obj, ok := m.(map[string]any)
		if !ok {
			return models.Bookmaker{}, &MalformedEventError{Index: index, Reason: "market is not an object"}
		}

		market, err := marketFromMap(obj, index)
		if err != nil {
			return models.Bookmaker{}, err
		}
		bookmaker.Markets = append(bookmaker.Markets, market)
	}

	return bookmaker, nil
}

func marketFromMap(raw map[string]any, index int) (models.Market, error) {
	market := models.Market{
		Outcomes: []models.Outcome{},
	}
	market.Key, _ = firstString(raw, marketKeyFields)

	outcomes, _ := firstSlice(raw, outcomesFields)
	for _, o := range outcomes {
		obj, ok := o.(map[string]any)
		if !ok {
			return models.Market{}, &MalformedEventError{Index: index, Reason: "outcome is not an object"}
		}

		outcome := models.Outcome{}
		outcome.Name, _ = firstString(obj, outcomeNameFields)
		outcome.Price, _ = firstNumber(obj, priceFields)
		if point, ok := firstNumber(obj, pointFields); ok {
			p := point
			outcome.Point = &p
		}

		market.Outcomes = append(market.Outcomes, outcome)
	}

	return market, nil
}

// firstString returns the first candidate field holding a non-null string
func firstString(raw map[string]any, candidates []string) (string, bool) {
	for _, name := range candidates {
		if s, ok := raw[name].(string); ok {
			return s, true
		}
	}
	return "", false
}

// firstStringish accepts strings and numbers, covering fields like
// commence_time that are ISO strings or unix epochs depending on dateFormat
func firstStringish(raw map[string]any, candidates []string) (string, bool) {
	for _, name := range candidates {
		switch v := raw[name].(type) {
		case string:
			return v, true
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
	}
	return "", false
}

// firstNumber returns the first candidate field holding a non-null number
func firstNumber(raw map[string]any, candidates []string) (float64, bool) {
	for _, name := range candidates {
		if n, ok := raw[name].(float64); ok {
			return n, true
		}
	}
	return 0, false
}

// firstSlice returns the first candidate field holding a non-null list
func firstSlice(raw map[string]any, candidates []string) ([]any, bool) {
	for _, name := range candidates {
		if s, ok := raw[name].([]any); ok {
			return s, true
		}
	}
	return nil, false
}
