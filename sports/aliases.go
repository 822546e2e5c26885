// Package sports holds the fixed alias and market-preset tables that
// translate simplified caller inputs into provider identifiers.
package sports

import "strings"

// Canonical sport keys are underscore-delimited, e.g. "basketball_nba".
// Anything containing the delimiter is trusted as already canonical.
const canonicalDelimiter = "_"

// aliases maps short human tokens to canonical provider sport keys
var aliases = map[string]string{
	"nba":   "basketball_nba",
	"wnba":  "basketball_wnba",
	"ncaab": "basketball_ncaab",
	"nfl":   "americanfootball_nfl",
	"ncaaf": "americanfootball_ncaaf",
	"mlb":   "baseball_mlb",
	"nhl":   "icehockey_nhl",
	"epl":   "soccer_epl",
	"mls":   "soccer_usa_mls",
	"ucl":   "soccer_uefa_champs_league",
}

// ResolveSport maps a short alias to a canonical provider sport key.
// Input is trimmed and lowercased first; delimiter-bearing input passes
// through in that normalized form, since provider sport keys are lowercase.
// Returns false for blank input and unknown aliases; never panics.
func ResolveSport(input string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return "", false
	}

	if strings.Contains(key, canonicalDelimiter) {
		return key, true
	}

	canonical, ok := aliases[key]
	return canonical, ok
}
