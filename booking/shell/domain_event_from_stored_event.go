package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrUnknownEventType is returned for stored events whose type is not part of
	// the closed domain event set. Projection halts for the affected aggregate only.
	ErrUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StoredEvents to DomainEvents.
func DomainEventsFrom(storedEvents eventstore.StoredEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storedEvents))

	for _, storedEvent := range storedEvents {
		domainEvent, err := DomainEventFrom(storedEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StoredEvent to its corresponding DomainEvent.
func DomainEventFrom(storedEvent eventstore.StoredEvent) (core.DomainEvent, error) {
	switch storedEvent.EventType {
	case core.FlightBookedEventType:
		return unmarshalFlightBooked(storedEvent.PayloadJSON)

	case core.HotelBookedEventType:
		return unmarshalHotelBooked(storedEvent.PayloadJSON)

	case core.PackageBookedEventType:
		return unmarshalPackageBooked(storedEvent.PayloadJSON)

	case core.BookingAmendedEventType:
		return unmarshalBookingAmended(storedEvent.PayloadJSON)

	case core.BookingCancelledEventType:
		return unmarshalBookingCancelled(storedEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrUnknownEventType)
	}
}

func unmarshalFlightBooked(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.FlightBooked)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload); err != nil {
		return core.FlightBooked{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalHotelBooked(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.HotelBooked)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload); err != nil {
		return core.HotelBooked{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalPackageBooked(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.PackageBooked)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload); err != nil {
		return core.PackageBooked{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalBookingAmended(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.BookingAmended)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload); err != nil {
		return core.BookingAmended{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalBookingCancelled(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.BookingCancelled)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload); err != nil {
		return core.BookingCancelled{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
