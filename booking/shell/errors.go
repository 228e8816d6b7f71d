package shell

import "errors"

// The command error taxonomy. Every error a handler returns wraps exactly one
// of these sentinels so callers can discriminate with errors.Is.
var (
	// ErrValidation marks a malformed command, rejected before any log access.
	ErrValidation = errors.New("command validation failed")

	// ErrOfferUnavailable marks a booking attempt against a stale or sold-out
	// provider offer. No event is appended.
	ErrOfferUnavailable = errors.New("offer is not available")

	// ErrInvalidStateTransition marks a command that is not allowed in the
	// aggregate's current status. No event is appended.
	ErrInvalidStateTransition = errors.New("booking is not in a state that allows this command")

	// ErrConflict marks an optimistic concurrency loss that retrying with fresh
	// state did not resolve. The caller may re-submit the whole command.
	ErrConflict = errors.New("concurrent change lost the append race")

	// ErrStorage marks an append durability failure. Nothing was persisted and
	// the whole command is safe to retry.
	ErrStorage = errors.New("event append failed")

	// ErrProjectionFailed marks a degraded success: the event is durable but the
	// read model row could not be updated and is stale until the next rebuild.
	ErrProjectionFailed = errors.New("projection failed after durable append")

	// ErrProvider marks an upstream travel provider failure or timeout.
	ErrProvider = errors.New("travel provider request failed")

	// ErrNotFound marks a read-model lookup miss.
	ErrNotFound = errors.New("booking not found")
)
