package bookflight

import (
	"fmt"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/provider"
	"github.com/tripmesh/bookingcore/booking/shell"
)

// Decide implements the business logic for booking a flight.
// This is a pure function with no side effects - it takes the aggregate's
// event history, the command and the provider's offer validation, and returns
// the decision.
//
// Business Rules:
//
//	GIVEN: A booking id and a provider offer validation
//	WHEN: BookFlight command is received
//	THEN: FlightBooked event is generated, priced at the validated offer price
//	ERROR: OfferUnavailable if the offer is invalid, sold out for the party size,
//	       or carries no positive price
//	ERROR: InvalidStateTransition if the booking id belongs to a cancelled booking
//	IDEMPOTENCY: If the booking already exists and is confirmed, no event is generated
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
		core.BuildFlightBooked(
			command.BookingID,
			command.OfferID,
			command.Departure,
			command.Destination,
			command.DepartDate,
			command.ReturnDate,
			offer.Price,
			command.Adults,
			command.PaymentMethod,
			command.OccurredAt,
		),
	)
}
