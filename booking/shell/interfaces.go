package shell

import (
	"context"

	"github.com/tripmesh/bookingcore/eventstore"
)

// EventLog is the event store surface the command handlers and the projector
// depend on. Both the Postgres engine and the memory engine satisfy it.
type EventLog interface {
	Append(
		ctx context.Context,
		aggregateID string,
		expectedVersion eventstore.VersionUint,
		events ...eventstore.StorableEvent,
	) (eventstore.StoredEvents, error)

	Read(
		ctx context.Context,
		aggregateID string,
		fromVersion eventstore.VersionUint,
	) (eventstore.StoredEvents, error)

	ReadAll(
		ctx context.Context,
		fromSequence eventstore.SequenceNumberUint,
		limit uint,
	) (eventstore.StoredEvents, error)
}

// ReadModelProjector applies durably appended events to the read model.
// Command handlers call it synchronously after a successful append.
type ReadModelProjector interface {
	Apply(ctx context.Context, storedEvent eventstore.StoredEvent) error
}
