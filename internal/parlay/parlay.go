// Package parlay converts between American and decimal odds representations
// and combines independent legs into a single price. It is pure local math:
// no network, no cache, no shared state.
package parlay

import (
	"strings"

	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/shopspring/decimal"
)

// Leg formats. Parsing is gated by the declared format; legs are never
// auto-detected.
const (
	FormatAmerican = "american"
	FormatDecimal  = "decimal"
)

// Fixed output precision: the combined decimal price rounds to 6 fraction
// digits, the implied probability percentage to 4.
const (
	decimalOddsPlaces = 6
	probabilityPlaces = 4
)

var (
	one     = decimal.New(1, 0)
	two     = decimal.New(2, 0)
	hundred = decimal.New(100, 0)
)

// Price combines the given legs into a single parlay price, treating legs as
// statistically independent. Blank legs are dropped before validation.
func Price(format string, legs []string) (*models.ParlayResult, error) {
	trimmed := make([]string, 0, len(legs))
	for _, leg := range legs {
		if s := strings.TrimSpace(leg); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	if len(trimmed) == 0 {
		return nil, ErrNoLegs
	}

	var parseLeg func(string) (decimal.Decimal, error)
	switch format {
	case FormatAmerican:
		parseLeg = americanLeg
	case FormatDecimal:
		parseLeg = decimalLeg
	default:
		return nil, &UnknownFormatError{Format: format}
	}

	combined := one
	for _, leg := range trimmed {
		d, err := parseLeg(leg)
		if err != nil {
			return nil, err
		}
		combined = combined.Mul(d)
	}

	return &models.ParlayResult{
		Format:             format,
		LegCount:           len(trimmed),
		DecimalOdds:        combined.Round(decimalOddsPlaces),
		AmericanOdds:       DecimalToAmerican(combined),
		ImpliedProbability: impliedPercent(combined),
	}, nil
}

// americanLeg parses a nonzero American price and converts it to decimal
// odds
func americanLeg(leg string) (decimal.Decimal, error) {
	n, err := decimal.NewFromString(leg)
	if err != nil || n.IsZero() {
		return decimal.Decimal{}, &InvalidLegError{Leg: leg, Format: FormatAmerican}
	}
	return AmericanToDecimal(n), nil
}

// decimalLeg parses a decimal odds value, which must exceed 1
func decimalLeg(leg string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(leg)
	if err != nil || d.LessThanOrEqual(one) {
		return decimal.Decimal{}, &InvalidLegError{Leg: leg, Format: FormatDecimal}
	}
	return d, nil
}

// AmericanToDecimal converts a nonzero American price to decimal odds:
// +150 -> 2.5, -200 -> 1.5.
func AmericanToDecimal(n decimal.Decimal) decimal.Decimal {
	if n.IsPositive() {
		return one.Add(n.Div(hundred))
	}
	return one.Add(hundred.Div(n.Abs()))
}

// DecimalToAmerican converts decimal odds to the nearest American integer
// price. Odds at or above 2 take the positive (underdog) branch. Input must
// exceed 1, which per-leg validation guarantees.
func DecimalToAmerican(d decimal.Decimal) int64 {
	if d.GreaterThanOrEqual(two) {
		return d.Sub(one).Mul(hundred).Round(0).IntPart()
	}
	return hundred.Neg().Div(d.Sub(one)).Round(0).IntPart()
}

// impliedPercent derives the implied probability of the combined price as a
// percentage, clamped to [0,100]
func impliedPercent(combined decimal.Decimal) decimal.Decimal {
	p := one.Div(combined).Mul(hundred)
	if p.IsNegative() {
		p = decimal.Zero
	}
	if p.GreaterThan(hundred) {
		p = hundred
	}
	return p.Round(probabilityPlaces)
}
