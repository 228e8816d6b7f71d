package bookflight

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/shell"
)

const commandType = "BookFlight"

// Command represents the intent to book a flight against a provider offer.
type Command struct {
	BookingID     uuid.UUID
	OfferID       string
	Departure     string
	Destination   string
	DepartDate    string
	ReturnDate    string
	Adults        uint
	PaymentMethod string
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// An empty payment method falls back to the default.
func BuildCommand(
	bookingID uuid.UUID,
	offerID string,
	departure string,
	destination string,
	departDate string,
	returnDate string,
	adults uint,
	paymentMethod string,
	occurredAt time.Time,
) Command {

	if paymentMethod == "" {
		paymentMethod = core.DefaultPaymentMethod
	}

	return Command{
		BookingID:     bookingID,
		OfferID:       offerID,
		Departure:     departure,
		Destination:   destination,
		DepartDate:    departDate,
		ReturnDate:    returnDate,
		Adults:        adults,
		PaymentMethod: paymentMethod,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the command's shape before any log or provider access.
func (c Command) Validate() error {
	if err := shell.ValidateBookingID(c.BookingID); err != nil {
		return err
	}

	if err := shell.ValidateRequiredString("offer id", c.OfferID); err != nil {
		return err
	}

	if err := shell.ValidateRequiredString("departure", c.Departure); err != nil {
		return err
	}

	if err := shell.ValidateRequiredString("destination", c.Destination); err != nil {
		return err
	}

	if err := shell.ValidateDateRange("depart date", c.DepartDate, "return date", c.ReturnDate); err != nil {
		return err
	}

	return shell.ValidateAdults(c.Adults)
}
