package readmodel

import (
	"time"

	"github.com/tripmesh/bookingcore/eventstore"
)

// BookingRow is the denormalized current-state view of one booking aggregate.
// One row per booking, updated in place as events are projected.
type BookingRow struct {
	BookingID string `db:"booking_id"`
	Kind      string `db:"kind"`
	Status    string `db:"status"`

	OfferID     string `db:"offer_id"`
	Departure   string `db:"departure"`
	Destination string `db:"destination"`
	DepartDate  string `db:"depart_date"`
	ReturnDate  string `db:"return_date"`

	HotelName string `db:"hotel_name"`
	HotelCity string `db:"hotel_city"`

	Price         float64 `db:"price"`
	Currency      string  `db:"currency"`
	Adults        uint    `db:"adults"`
	PaymentMethod string  `db:"payment_method"`

	CancellationReason string  `db:"cancellation_reason"`
	RefundAmount       float64 `db:"refund_amount"`

	// LastEventID and LastVersion identify the event this row reflects,
	// enabling audit trace-back and the idempotence guard on projection.
	LastEventID string                 `db:"last_event_id"`
	LastVersion eventstore.VersionUint `db:"last_version"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
