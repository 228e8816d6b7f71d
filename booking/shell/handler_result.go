package shell

import "time"

// HandlerResult represents the outcome of a command handler execution.
// It captures the business outcome (booking id, last event id, status) and
// execution metadata (retry information) without coupling the handler to
// specific observability implementations.
//
// The three user-visible outcomes of a command map onto it as follows:
//   - full success: EventID set, ReadModelStale false
//   - full failure: the handler returns an error alongside a zero-value result
//   - degraded success: EventID set, ReadModelStale true - the event is durable
//     but the read model row was not updated and awaits a rebuild or retry
type HandlerResult struct {
	// BookingID identifies the booking aggregate the command acted on.
	BookingID string

	// EventID is the id of the last event appended by this command, enabling
	// audit trace-back. Empty for idempotent outcomes.
	EventID string

	// Status is the booking's status after the command ("confirmed", "cancelled").
	Status string

	// Idempotent indicates the command required no state change.
	Idempotent bool

	// ReadModelStale indicates the degraded-success case: events were durably
	// appended but the synchronous projection failed.
	ReadModelStale bool

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// RetriesExhausted indicates max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a fully successful command.
func NewSuccessResult(bookingID string, eventID string, status string, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		BookingID:        bookingID,
		EventID:          eventID,
		Status:           status,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewIdempotentResult creates a HandlerResult for a command that needed no state change.
func NewIdempotentResult(bookingID string, status string, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		BookingID:        bookingID,
		Status:           status,
		Idempotent:       true,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewStaleResult creates a HandlerResult for the degraded-success case: the
// event is durable, the read model row is stale.
func NewStaleResult(bookingID string, eventID string, status string, retryMetrics RetryMetrics) HandlerResult {
	result := NewSuccessResult(bookingID, eventID, status, retryMetrics)
	result.ReadModelStale = true

	return result
}

// NewErrorResult creates a HandlerResult for failed operations that still
// reports retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
