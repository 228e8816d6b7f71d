package core

import (
	"time"

	"github.com/google/uuid"
)

// PackageBookedEventType is the event type identifier.
const PackageBookedEventType = "PackageBooked"

// PackageBooked represents when a combined flight + hotel package was booked
// as one booking aggregate.
type PackageBooked struct {
	BookingID     BookingIDString
	OfferID       OfferIDString
	Departure     string
	Destination   string
	DepartDate    string
	ReturnDate    string
	HotelName     string
	HotelCity     string
	Price         float64
	Currency      string
	Adults        uint
	PaymentMethod string
	OccurredAt    OccurredAtTS
}

// BuildPackageBooked creates a new PackageBooked event.
func BuildPackageBooked(
	bookingID uuid.UUID,
	offerID string,
	departure string,
	destination string,
	departDate string,
	returnDate string,
	hotelName string,
	hotelCity string,
	price float64,
	adults uint,
	paymentMethod string,
	occurredAt time.Time,
) PackageBooked {

	return PackageBooked{
		BookingID:     bookingID.String(),
		OfferID:       offerID,
		Departure:     departure,
		Destination:   destination,
		DepartDate:    departDate,
		ReturnDate:    returnDate,
		HotelName:     hotelName,
		HotelCity:     hotelCity,
		Price:         price,
		Currency:      DefaultCurrency,
		Adults:        adults,
		PaymentMethod: paymentMethod,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PackageBooked) EventType() string {
	return PackageBookedEventType
}

// HasOccurredAt returns when this event occurred.
func (e PackageBooked) HasOccurredAt() time.Time {
	return e.OccurredAt
}
