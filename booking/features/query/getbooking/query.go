package getbooking

import (
	"github.com/google/uuid"
)

const queryType = "GetBooking"

// Query represents the request for one booking's current state.
type Query struct {
	BookingID uuid.UUID
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookingID uuid.UUID) Query {
	return Query{BookingID: bookingID}
}
