package shell

import (
	"errors"

	"github.com/tripmesh/bookingcore/eventstore"
)

// MapCommandError normalizes an error from the command execution path onto
// the command error taxonomy. Errors already carrying a taxonomy sentinel
// pass through unchanged, an exhausted concurrency conflict becomes
// ErrConflict, and anything else from the storage layer becomes ErrStorage.
func MapCommandError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrOfferUnavailable),
		errors.Is(err, ErrInvalidStateTransition),
		errors.Is(err, ErrProvider),
		errors.Is(err, ErrStorage):
		return err

	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return errors.Join(ErrConflict, err)

	default:
		return errors.Join(ErrStorage, err)
	}
}
