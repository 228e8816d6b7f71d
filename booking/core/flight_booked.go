package core

import (
	"time"

	"github.com/google/uuid"
)

// FlightBookedEventType is the event type identifier.
const FlightBookedEventType = "FlightBooked"

// FlightBooked represents when a flight booking was confirmed against a provider offer.
// It is a creation event: it starts the booking aggregate's stream.
type FlightBooked struct {
	BookingID     BookingIDString
	OfferID       OfferIDString
	Departure     string
	Destination   string
	DepartDate    string
	ReturnDate    string
	Price         float64
	Currency      string
	Adults        uint
	PaymentMethod string
	OccurredAt    OccurredAtTS
}

// BuildFlightBooked creates a new FlightBooked event.
func BuildFlightBooked(
	bookingID uuid.UUID,
	offerID string,
	departure string,
	destination string,
	departDate string,
	returnDate string,
	price float64,
	adults uint,
	paymentMethod string,
	occurredAt time.Time,
) FlightBooked {

	return FlightBooked{
		BookingID:     bookingID.String(),
		OfferID:       offerID,
		Departure:     departure,
		Destination:   destination,
		DepartDate:    departDate,
		ReturnDate:    returnDate,
		Price:         price,
		Currency:      DefaultCurrency,
		Adults:        adults,
		PaymentMethod: paymentMethod,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FlightBooked) EventType() string {
	return FlightBookedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FlightBooked) HasOccurredAt() time.Time {
	return e.OccurredAt
}
