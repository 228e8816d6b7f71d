package readmodel

import (
	"context"
	"errors"
)

// ErrBookingRowNotFound is returned by Get for a booking id with no row.
var ErrBookingRowNotFound = errors.New("booking row not found")

// Store is the read model persistence surface the projector and the query
// path depend on. Both the in-memory store and the Postgres store satisfy it.
type Store interface {
	// Get returns the row for the given booking id, or ErrBookingRowNotFound.
	Get(ctx context.Context, bookingID string) (BookingRow, error)

	// Upsert inserts or replaces the row keyed by its booking id.
	Upsert(ctx context.Context, row BookingRow) error

	// Delete removes the row for the given booking id. Deleting a missing
	// row is not an error, rebuilds use it to reset state.
	Delete(ctx context.Context, bookingID string) error

	// All returns every row, for diagnostics and rebuild verification.
	All(ctx context.Context) ([]BookingRow, error)
}
