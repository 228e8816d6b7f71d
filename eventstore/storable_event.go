package eventstore

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
var ErrEmptyEventID = errors.New("empty event id supplied")
var ErrEmptyAggregateID = errors.New("empty aggregate id supplied")
var ErrEmptyEventType = errors.New("empty event type supplied")

// StorableEvents is an alias type for a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StoredEvents is an alias type for a slice of StoredEvent.
type StoredEvents = []StoredEvent

// StorableEvent is a DTO (data transfer object) used by the EventStore to append events.
// It is what the append caller drafts: the store assigns Version and SequenceNumber
// on successful append, turning it into a StoredEvent.
//
// It is built on scalars to be completely agnostic of the implementation of Domain Events
// in the client code.
//
// While its properties are exported, it should only be constructed with the supplied
// factory methods:
//   - BuildStorableEvent
//   - BuildStorableEventWithEmptyMetadata
type StorableEvent struct {
	EventID      string
	AggregateID  string
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// StoredEvent is a StorableEvent that has been durably appended.
// Version is the per-aggregate sequence (gapless, starting at 1) and
// SequenceNumber is the global append order across all aggregates.
type StoredEvent struct {
	StorableEvent
	Version        VersionUint
	SequenceNumber SequenceNumberUint
}

// BuildStorableEvent is a factory method for StorableEvent.
//
// It populates the StorableEvent with the given scalar input.
// Returns an error if any identifier is empty or if payloadJSON or metadataJSON
// are not valid JSON.
func BuildStorableEvent(
	eventID string,
	aggregateID string,
	eventType string,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (StorableEvent, error) {

	if eventID == "" {
		return StorableEvent{}, ErrEmptyEventID
	}

	if aggregateID == "" {
		return StorableEvent{}, ErrEmptyAggregateID
	}

	if eventType == "" {
		return StorableEvent{}, ErrEmptyEventType
	}

	if !json.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !json.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventID:      eventID,
		AggregateID:  aggregateID,
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildStorableEventWithEmptyMetadata is a factory method for StorableEvent.
//
// It populates the StorableEvent with the given scalar input and creates valid
// empty JSON for MetadataJSON.
func BuildStorableEventWithEmptyMetadata(
	eventID string,
	aggregateID string,
	eventType string,
	occurredAt time.Time,
	payloadJSON []byte,
) (StorableEvent, error) {

	return BuildStorableEvent(eventID, aggregateID, eventType, occurredAt, payloadJSON, []byte("{}"))
}
