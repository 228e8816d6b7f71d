package shell

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripmesh/bookingcore/booking/core"
)

// Party size limits enforced on every booking command.
const (
	MinAdults = 1
	MaxAdults = 9
)

// ValidateBookingID rejects the zero UUID. Booking ids are client-generated
// so re-delivered commands hit the same aggregate.
func ValidateBookingID(bookingID uuid.UUID) error {
	if bookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id must not be empty", ErrValidation)
	}

	return nil
}

// ValidateRequiredString rejects empty required fields.
func ValidateRequiredString(field string, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}

	return nil
}

// ValidateAdults enforces the party size range.
func ValidateAdults(adults uint) error {
	if adults < MinAdults || adults > MaxAdults {
		return fmt.Errorf("%w: adults must be between %d and %d", ErrValidation, MinAdults, MaxAdults)
	}

	return nil
}

// ValidateDateRange checks that both dates parse as YYYY-MM-DD and that the
// end date does not precede the start date.
func ValidateDateRange(startField string, startDate string, endField string, endDate string) error {
	start, startErr := time.Parse(core.DateLayout, startDate)
	if startErr != nil {
		return fmt.Errorf("%w: %s must be a valid date in format %s", ErrValidation, startField, core.DateLayout)
	}

	end, endErr := time.Parse(core.DateLayout, endDate)
	if endErr != nil {
		return fmt.Errorf("%w: %s must be a valid date in format %s", ErrValidation, endField, core.DateLayout)
	}

	if end.Before(start) {
		return fmt.Errorf("%w: %s must not precede %s", ErrValidation, endField, startField)
	}

	return nil
}
