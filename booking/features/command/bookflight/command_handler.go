package bookflight

import (
	"context"
	"errors"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/provider"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
)

// CommandHandler orchestrates the complete command processing workflow:
// Read -> Unmarshal -> Validate offer -> Decide -> Append -> Project.
// The provider is consulted only when the booking does not exist yet, and at
// most once per command even when the append is retried.
type CommandHandler struct {
	log          shell.EventLog
	projector    shell.ReadModelProjector
	validator    provider.OfferValidator
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(
	log shell.EventLog,
	projector shell.ReadModelProjector,
	validator provider.OfferValidator,
	opts ...Option,
) CommandHandler {

	handler := CommandHandler{
		log:       log,
		projector: projector,
		validator: validator,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command processing workflow with retry on benign
// concurrency conflicts. The returned error is always part of the command
// error taxonomy.
//
// On a projection failure after a durable append the result reports a stale
// read model alongside ErrProjectionFailed: the booking exists, only its row
// lags until the next rebuild.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if validateErr := command.Validate(); validateErr != nil {
		return shell.HandlerResult{}, validateErr
	}

	var (
		appended eventstore.StoredEvents
		state    core.BookingState
		offer    *provider.OfferValidation
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		appended = nil

		storedEvents, readErr := h.log.Read(retryCtx, command.BookingID.String(), 1)
		if readErr != nil {
			return errors.Join(shell.ErrStorage, readErr)
		}

		history, mapErr := shell.DomainEventsFrom(storedEvents)
		if mapErr != nil {
			return errors.Join(shell.ErrStorage, mapErr)
		}

		state = core.ProjectBookingState(history)

		if !state.Exists && offer == nil {
			validation, validateErr := h.validator.ValidateOffer(retryCtx, command.OfferID)
			if validateErr != nil {
				return errors.Join(shell.ErrProvider, validateErr)
			}

			offer = &validation
		}

		var validation provider.OfferValidation
		if offer != nil {
			validation = *offer
		}

		result := Decide(history, command, validation)

		if decideErr := result.HasError(); decideErr != nil {
			return decideErr
		}

		if !result.HasEventsToAppend() {
			return nil
		}

		storableEvents, buildErr := shell.StorableEventsFrom(result.Events, command.BookingID.String())
		if buildErr != nil {
			return errors.Join(shell.ErrStorage, buildErr)
		}

		expectedVersion := eventstore.VersionUint(len(storedEvents))

		stored, appendErr := h.log.Append(retryCtx, command.BookingID.String(), expectedVersion, storableEvents...)
		if appendErr != nil {
			return appendErr
		}

		appended = stored

		return nil
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), shell.MapCommandError(err)
	}

	if len(appended) == 0 {
		return shell.NewIdempotentResult(command.BookingID.String(), state.Status, retryMetrics), nil
	}

	lastEventID := appended[len(appended)-1].EventID

	for _, storedEvent := range appended {
		if projectErr := h.projector.Apply(ctx, storedEvent); projectErr != nil {
			return shell.NewStaleResult(command.BookingID.String(), lastEventID, core.StatusConfirmed, retryMetrics),
				errors.Join(shell.ErrProjectionFailed, projectErr)
		}
	}

	return shell.NewSuccessResult(command.BookingID.String(), lastEventID, core.StatusConfirmed, retryMetrics), nil
}
