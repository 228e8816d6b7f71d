package core

import (
	"time"
)

// BookingAmendedEventType is the event type identifier.
const BookingAmendedEventType = "BookingAmended"

// BookingAmended represents when the travel dates, party size or price of an
// existing booking were changed. The dates apply to the booking's own date
// fields: depart/return for flights and packages, check-in/check-out for hotels.
type BookingAmended struct {
	BookingID  BookingIDString
	StartDate  string
	EndDate    string
	Adults     uint
	Price      float64
	OccurredAt OccurredAtTS
}

// BuildBookingAmended creates a new BookingAmended event.
func BuildBookingAmended(
	bookingID BookingIDString,
	startDate string,
	endDate string,
	adults uint,
	price float64,
	occurredAt time.Time,
) BookingAmended {

	return BookingAmended{
		BookingID:  bookingID,
		StartDate:  startDate,
		EndDate:    endDate,
		Adults:     adults,
		Price:      price,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookingAmended) EventType() string {
	return BookingAmendedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookingAmended) HasOccurredAt() time.Time {
	return e.OccurredAt
}
