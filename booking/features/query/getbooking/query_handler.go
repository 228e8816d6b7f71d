package getbooking

import (
	"context"
	"errors"

	"github.com/tripmesh/bookingcore/booking/readmodel"
	"github.com/tripmesh/bookingcore/booking/shell"
)

// QueryHandler answers GetBooking queries from the read model store.
type QueryHandler struct {
	store readmodel.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store readmodel.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the read model row for the queried booking, or ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (readmodel.BookingRow, error) {
	row, err := h.store.Get(ctx, query.BookingID.String())
	if err != nil {
		if errors.Is(err, readmodel.ErrBookingRowNotFound) {
			return readmodel.BookingRow{}, shell.ErrNotFound
		}

		return readmodel.BookingRow{}, err
	}

	return row, nil
}
