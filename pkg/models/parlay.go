package models

import "github.com/shopspring/decimal"

// ParlayResult is the combined price of independent legs. All values are
// derived, never stored: the decimal price rounds to 6 fraction digits and
// the implied probability percentage to 4, so identical input always yields
// identical output.
type ParlayResult struct {
	Format             string          `json:"format"`
	LegCount           int             `json:"leg_count"`
	DecimalOdds        decimal.Decimal `json:"decimal_odds"`
	AmericanOdds       int64           `json:"american_odds"`
	ImpliedProbability decimal.Decimal `json:"implied_probability_pct"`
}
