package core

import (
	"time"
)

// BookingCancelledEventType is the event type identifier.
const BookingCancelledEventType = "BookingCancelled"

// BookingCancelled represents when a booking was cancelled. It is terminal:
// no further events are accepted for the aggregate.
type BookingCancelled struct {
	BookingID    BookingIDString
	Reason       string
	RefundAmount float64
	OccurredAt   OccurredAtTS
}

// BuildBookingCancelled creates a new BookingCancelled event.
func BuildBookingCancelled(
	bookingID BookingIDString,
	reason string,
	refundAmount float64,
	occurredAt time.Time,
) BookingCancelled {

	return BookingCancelled{
		BookingID:    bookingID,
		Reason:       reason,
		RefundAmount: refundAmount,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookingCancelled) EventType() string {
	return BookingCancelledEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookingCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
