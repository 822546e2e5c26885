package sports

import (
	"sort"
	"strings"
)

// preset is a fixed, ordered bundle of provider market tokens. A non-empty
// domainPrefix restricts the preset to one sport family.
type preset struct {
	markets      []string
	domainPrefix string
}

var presets = map[string]preset{
	"fullgame": {
		markets: []string{"h2h", "spreads", "totals"},
	},
	"firsthalf": {
		markets: []string{"h2h_h1", "spreads_h1", "totals_h1"},
	},
	"firstquarter": {
		markets: []string{"h2h_q1", "spreads_q1", "totals_q1"},
	},
	"first5innings": {
		markets:      []string{"h2h_1st_5_innings", "spreads_1st_5_innings", "totals_1st_5_innings"},
		domainPrefix: "baseball_",
	},
	"playerprops": {
		markets: []string{"player_points", "player_rebounds", "player_assists"},
	},
}

// ResolvePreset expands a named preset into its market token list.
// Fails with UnknownPresetError for names outside the fixed table and with
// DomainMismatchError when a domain-restricted preset is paired with a sport
// key outside its family.
func ResolvePreset(name, sportKey string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	p, ok := presets[key]
	if !ok {
		return nil, &UnknownPresetError{Name: name}
	}

	if p.domainPrefix != "" && !strings.HasPrefix(sportKey, p.domainPrefix) {
		return nil, &DomainMismatchError{
			Preset:     key,
			SportKey:   sportKey,
			WantPrefix: p.domainPrefix,
		}
	}

	markets := make([]string, len(p.markets))
	copy(markets, p.markets)
	return markets, nil
}

// PresetNames returns the preset table's names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
