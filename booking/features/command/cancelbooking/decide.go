package cancelbooking

import (
	"fmt"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/shell"
)

// Decide implements the business logic for cancelling a booking.
//
// Business Rules:
//
//	GIVEN: An existing confirmed booking
//	WHEN: CancelBooking command is received
//	THEN: BookingCancelled event is generated with a full refund of the
//	      booking's current price
//	ERROR: InvalidStateTransition if the booking does not exist
//	IDEMPOTENCY: If the booking is already cancelled, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state := core.ProjectBookingState(history)

	if !state.Exists {
		return core.ErrorDecision(
			fmt.Errorf("%w: booking does not exist", shell.ErrInvalidStateTransition))
	}

	if state.Status == core.StatusCancelled {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookingCancelled(
			command.BookingID.String(),
			command.Reason,
			state.Price,
			command.OccurredAt,
		),
	)
}
