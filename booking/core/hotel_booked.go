package core

import (
	"time"

	"github.com/google/uuid"
)

// HotelBookedEventType is the event type identifier.
const HotelBookedEventType = "HotelBooked"

// HotelBooked represents when a hotel stay was booked.
// It is a creation event: it starts the booking aggregate's stream.
type HotelBooked struct {
	BookingID     BookingIDString
	OfferID       OfferIDString
	HotelName     string
	HotelCity     string
	CheckIn       string
	CheckOut      string
	Price         float64
	Currency      string
	Adults        uint
	PaymentMethod string
	OccurredAt    OccurredAtTS
}

// BuildHotelBooked creates a new HotelBooked event.
func BuildHotelBooked(
	bookingID uuid.UUID,
	offerID string,
	hotelName string,
	hotelCity string,
	checkIn string,
	checkOut string,
	price float64,
	adults uint,
	paymentMethod string,
	occurredAt time.Time,
) HotelBooked {

	return HotelBooked{
		BookingID:     bookingID.String(),
		OfferID:       offerID,
		HotelName:     hotelName,
		HotelCity:     hotelCity,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Price:         price,
		Currency:      DefaultCurrency,
		Adults:        adults,
		PaymentMethod: paymentMethod,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e HotelBooked) EventType() string {
	return HotelBookedEventType
}

// HasOccurredAt returns when this event occurred.
func (e HotelBooked) HasOccurredAt() time.Time {
	return e.OccurredAt
}
