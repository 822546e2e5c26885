package contracts

import (
	"context"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// OddsGateway defines the interface for the upstream odds provider client.
// The HTTP layer depends on this rather than the concrete adapter so handler
// tests can run against a fake.
type OddsGateway interface {
	// FetchListing retrieves the sport-scoped odds listing
	FetchListing(ctx context.Context, opts *models.ListingOptions) (*models.FetchResult, error)

	// FetchEventMarkets retrieves odds for a single event (props markets)
	FetchEventMarkets(ctx context.Context, opts *models.EventMarketsOptions) (*models.FetchResult, error)
}
