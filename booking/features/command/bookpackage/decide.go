package bookpackage

import (
	"fmt"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/provider"
	"github.com/tripmesh/bookingcore/booking/shell"
)

// Decide implements the business logic for booking a package.
// Pure function: event history plus command plus offer validation in,
// decision out. The package is one aggregate, so confirmation is atomic:
// either the whole package books or nothing does.
func Decide(history core.DomainEvents, command Command, offer provider.OfferValidation) core.DecisionResult {
	state := core.ProjectBookingState(history)

	if state.Exists {
		if state.Status == core.StatusCancelled {
			return core.ErrorDecision(
				fmt.Errorf("%w: booking was cancelled and cannot be recreated", shell.ErrInvalidStateTransition))
		}

		return core.IdempotentDecision()
	}

	if !offer.Valid {
		return core.ErrorDecision(
			fmt.Errorf("%w: offer %s is no longer valid", shell.ErrOfferUnavailable, command.OfferID))
	}

	if offer.Capacity < command.Adults {
		return core.ErrorDecision(
			fmt.Errorf("%w: offer %s has capacity %d for %d adults",
				shell.ErrOfferUnavailable, command.OfferID, offer.Capacity, command.Adults))
	}

	if offer.Price <= 0 {
		return core.ErrorDecision(
			fmt.Errorf("%w: offer %s has no positive price", shell.ErrOfferUnavailable, command.OfferID))
	}

	return core.SuccessDecision(
		core.BuildPackageBooked(
			command.BookingID,
			command.OfferID,
			command.Departure,
			command.Destination,
			command.DepartDate,
			command.ReturnDate,
			command.HotelName,
			command.HotelCity,
			offer.Price,
			command.Adults,
			command.PaymentMethod,
			command.OccurredAt,
		),
	)
}
