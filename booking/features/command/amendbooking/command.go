package amendbooking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/shell"
)

const commandType = "AmendBooking"

// Command represents the intent to change an existing booking's travel dates,
// party size or price.
type Command struct {
	BookingID  uuid.UUID
	StartDate  string
	EndDate    string
	Adults     uint
	Price      float64
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookingID uuid.UUID,
	startDate string,
	endDate string,
	adults uint,
	price float64,
	occurredAt time.Time,
) Command {

	return Command{
		BookingID:  bookingID,
		StartDate:  startDate,
		EndDate:    endDate,
		Adults:     adults,
		Price:      price,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the command's shape before any log access.
func (c Command) Validate() error {
	if err := shell.ValidateBookingID(c.BookingID); err != nil {
		return err
	}

	if err := shell.ValidateDateRange("start date", c.StartDate, "end date", c.EndDate); err != nil {
		return err
	}

	if err := shell.ValidateAdults(c.Adults); err != nil {
		return err
	}

	if c.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", shell.ErrValidation)
	}

	return nil
}
