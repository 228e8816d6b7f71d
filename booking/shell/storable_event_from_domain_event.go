package shell

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/eventstore"
)

// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails.
var ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails.
var ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent
// draft for the given aggregate. The event id is assigned here, at creation,
// and never reused.
func StorableEventFrom(
	event core.DomainEvent,
	aggregateID string,
	eventID uuid.UUID,
	metadata EventMetadata,
) (eventstore.StorableEvent, error) {

	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(
		eventID.String(),
		aggregateID,
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)

	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// StorableEventsFrom converts the events of one decision into StorableEvent
// drafts sharing a correlation id, with each event caused by the one before it.
func StorableEventsFrom(events core.DomainEvents, aggregateID string) (eventstore.StorableEvents, error) {
	correlationID := uuid.New()
	causationID := correlationID

	storableEvents := make(eventstore.StorableEvents, 0, len(events))

	for _, event := range events {
		eventID := uuid.New()

		storableEvent, err := StorableEventFrom(event, aggregateID, eventID, BuildEventMetadata(eventID, causationID, correlationID))
		if err != nil {
			return nil, err
		}

		storableEvents = append(storableEvents, storableEvent)
		causationID = eventID
	}

	return storableEvents, nil
}
