package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the booking domain.
//
// The set of implementations in this package is closed: the projection and the
// event mapping dispatch over it exhaustively, so adding an event kind is a
// compile-time-checked change, not a runtime lookup.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time
}
