package core

import (
	"time"
)

// Instead of implementing full value objects, alias types and helper methods are used here ...

// BookingIDString represents a booking (aggregate) identifier.
type BookingIDString = string

// OfferIDString represents a provider offer identifier.
type OfferIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// DefaultCurrency is the currency all bookings are priced in.
const DefaultCurrency = "EUR"

// DefaultPaymentMethod is recorded when a command does not specify one.
const DefaultPaymentMethod = "credit_card"

// DateLayout is the wire format for all travel dates.
const DateLayout = "2006-01-02"

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
