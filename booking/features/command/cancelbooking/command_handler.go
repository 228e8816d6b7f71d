package cancelbooking

import (
	"context"
	"errors"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
)

// CommandHandler orchestrates the complete command processing workflow:
// Read -> Unmarshal -> Decide -> Append -> Project.
//
// Two concurrent cancellations race on the expected version: the loser's
// retry re-reads the stream, finds the booking already cancelled and ends
// idempotent, so exactly one BookingCancelled event is ever appended.
type CommandHandler struct {
	log          shell.EventLog
	projector    shell.ReadModelProjector
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
func NewCommandHandler(log shell.EventLog, projector shell.ReadModelProjector, opts ...Option) CommandHandler {
	handler := CommandHandler{
		log:       log,
		projector: projector,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command processing workflow with retry on benign
// concurrency conflicts. The returned error is always part of the command
// error taxonomy.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if validateErr := command.Validate(); validateErr != nil {
		return shell.HandlerResult{}, validateErr
	}

	var appended eventstore.StoredEvents

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

		result := Decide(history, command)

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
		return shell.NewIdempotentResult(command.BookingID.String(), core.StatusCancelled, retryMetrics), nil
	}

	lastEventID := appended[len(appended)-1].EventID

	for _, storedEvent := range appended {
		if projectErr := h.projector.Apply(ctx, storedEvent); projectErr != nil {
			return shell.NewStaleResult(command.BookingID.String(), lastEventID, core.StatusCancelled, retryMetrics),
				errors.Join(shell.ErrProjectionFailed, projectErr)
		}
	}

	return shell.NewSuccessResult(command.BookingID.String(), lastEventID, core.StatusCancelled, retryMetrics), nil
}
