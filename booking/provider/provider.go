package provider

import (
	"context"
	"errors"
)

// ErrProviderRequestFailed is returned when the provider cannot be reached,
// times out, or answers with a non-success status.
var ErrProviderRequestFailed = errors.New("provider request failed")

// OfferValidation is the provider's answer to "is this offer still bookable".
// Price is authoritative: bookings record the validated price, not the price
// the client remembered.
type OfferValidation struct {
	Valid    bool    `json:"valid"`
	Price    float64 `json:"price"`
	Capacity uint    `json:"capacity"`
}

// Offer is one search result from the provider.
type Offer struct {
	OfferID     string  `json:"offer_id"`
	Departure   string  `json:"departure"`
	Destination string  `json:"destination"`
	DepartDate  string  `json:"depart_date"`
	ReturnDate  string  `json:"return_date"`
	Price       float64 `json:"price"`
	Capacity    uint    `json:"capacity"`
}

// SearchCriteria narrows an offer search.
type SearchCriteria struct {
	Departure   string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      uint
}

// OfferValidator validates a single offer during booking creation.
type OfferValidator interface {
	ValidateOffer(ctx context.Context, offerID string) (OfferValidation, error)
}

// OfferSearcher searches the provider's offer inventory.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, criteria SearchCriteria) ([]Offer, error)
}

// Client is the full provider surface.
type Client interface {
	OfferValidator
	OfferSearcher
}
