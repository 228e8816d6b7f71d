package cancelbooking

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/shell"
)

const commandType = "CancelBooking"

// Command represents the intent to cancel an existing booking.
type Command struct {
	BookingID  uuid.UUID
	Reason     string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookingID uuid.UUID, reason string, occurredAt time.Time) Command {
	return Command{
		BookingID:  bookingID,
		Reason:     reason,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the command's shape before any log access.
func (c Command) Validate() error {
	if err := shell.ValidateBookingID(c.BookingID); err != nil {
		return err
	}

	return shell.ValidateRequiredString("reason", c.Reason)
}
