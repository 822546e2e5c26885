// Package testutil provides raw-payload builders for normalization and
// handler tests.
package testutil

import "encoding/json"

// RawEvent builds a raw listing event in the provider's current flavor
func RawEvent(id, sportKey, home, away string, bookmakers ...map[string]any) map[string]any {
	books := make([]any, 0, len(bookmakers))
	for _, b := range bookmakers {
		books = append(books, b)
	}
	return map[string]any{
		"id":            id,
		"sport_key":     sportKey,
		"commence_time": "2025-01-15T00:10:00Z",
		"home_team":     home,
		"away_team":     away,
		"bookmakers":    books,
	}
}

// RawBookmaker builds a raw bookmaker entry
func RawBookmaker(key, title string, markets ...map[string]any) map[string]any {
	ms := make([]any, 0, len(markets))
	for _, m := range markets {
		ms = append(ms, m)
	}
	return map[string]any{
		"key":     key,
		"title":   title,
		"markets": ms,
	}
}

// RawMarket builds a raw market entry
func RawMarket(key string, outcomes ...map[string]any) map[string]any {
	os := make([]any, 0, len(outcomes))
	for _, o := range outcomes {
		os = append(os, o)
	}
	return map[string]any{
		"key":      key,
		"outcomes": os,
	}
}

// RawOutcome builds a raw outcome entry; pass a nil point for moneyline
// markets
func RawOutcome(name string, price float64, point *float64) map[string]any {
	out := map[string]any{
		"name":  name,
		"price": price,
	}
	if point != nil {
		out["point"] = *point
	}
	return out
}

// ListingJSON marshals raw events into a listing payload
func ListingJSON(events ...map[string]any) []byte {
	list := make([]any, 0, len(events))
	for _, e := range events {
		list = append(list, e)
	}
	data, err := json.Marshal(list)
	if err != nil {
		panic(err)
	}
	return data
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}
