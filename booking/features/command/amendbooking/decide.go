package amendbooking

import (
	"fmt"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/shell"
)

// Decide implements the business logic for amending a booking.
//
// Business Rules:
//
//	GIVEN: An existing booking
//	WHEN: AmendBooking command is received
//	THEN: BookingAmended event is generated
//	ERROR: InvalidStateTransition if the booking does not exist
//	ERROR: InvalidStateTransition if the booking is cancelled
//	IDEMPOTENCY: If dates, party size and price already match, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state := core.ProjectBookingState(history)

	if !state.Exists {
		return core.ErrorDecision(
			fmt.Errorf("%w: booking does not exist", shell.ErrInvalidStateTransition))
	}

	if state.Status == core.StatusCancelled {
		return core.ErrorDecision(
			fmt.Errorf("%w: a cancelled booking cannot be amended", shell.ErrInvalidStateTransition))
	}

	if state.StartDate == command.StartDate &&
		state.EndDate == command.EndDate &&
		state.Adults == command.Adults &&
		state.Price == command.Price {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookingAmended(
			command.BookingID.String(),
			command.StartDate,
			command.EndDate,
			command.Adults,
			command.Price,
			command.OccurredAt,
		),
	)
}
