// Package memoryengine implements an in-process storage engine of the event log
// with the same semantics as the Postgres engine: optimistic expected-version
// appends, gapless per-aggregate versions and a global sequence number.
//
// It exists for tests and operational tooling that must run without a database.
package memoryengine

import (
	"context"
	"sync"

	"github.com/tripmesh/bookingcore/eventstore"
)

// EventStore is a mutex-guarded, in-process append-only event log.
// The zero value is not usable; construct it with NewEventStore.
type EventStore struct {
	mu       sync.RWMutex
	byStream map[string]eventstore.StoredEvents
	global   eventstore.StoredEvents
}

// NewEventStore creates an empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		byStream: make(map[string]eventstore.StoredEvents),
	}
}

// Append appends events for a single aggregate under the optimistic
// expected-version check, mirroring the Postgres engine's contract.
// The whole batch is applied atomically or not at all.
func (es *EventStore) Append(
	ctx context.Context,
	aggregateID string,
	expectedVersion eventstore.VersionUint,
	events ...eventstore.StorableEvent,
) (eventstore.StoredEvents, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, eventstore.ErrNoEventsToAppend
	}

	for _, event := range events {
		if event.AggregateID != aggregateID {
			return nil, eventstore.ErrMixedAggregateIDs
		}
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	stream := es.byStream[aggregateID]

	currentVersion := eventstore.InitialVersion
	if len(stream) > 0 {
		currentVersion = stream[len(stream)-1].Version
	}

	if currentVersion != expectedVersion {
		return nil, eventstore.ErrConcurrencyConflict
	}

	appended := make(eventstore.StoredEvents, 0, len(events))
	for i, event := range events {
		stored := eventstore.StoredEvent{
			StorableEvent:  event,
			Version:        expectedVersion + eventstore.VersionUint(i) + 1,
			SequenceNumber: eventstore.SequenceNumberUint(len(es.global) + i + 1),
		}
		appended = append(appended, stored)
	}

	es.byStream[aggregateID] = append(stream, appended...)
	es.global = append(es.global, appended...)

	return appended, nil
}

// Read retrieves the events of one aggregate in ascending version order,
// starting at fromVersion. Returns an empty slice for an unknown aggregate.
func (es *EventStore) Read(
	ctx context.Context,
	aggregateID string,
	fromVersion eventstore.VersionUint,
) (eventstore.StoredEvents, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	stream := es.byStream[aggregateID]
	result := make(eventstore.StoredEvents, 0, len(stream))

	for _, event := range stream {
		if event.Version >= fromVersion {
			result = append(result, event)
		}
	}

	return result, nil
}

// ReadAll retrieves events across all aggregates in global append order,
// starting at fromSequence (inclusive). A limit of 0 means no limit.
func (es *EventStore) ReadAll(
	ctx context.Context,
	fromSequence eventstore.SequenceNumberUint,
	limit uint,
) (eventstore.StoredEvents, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make(eventstore.StoredEvents, 0, len(es.global))

	for _, event := range es.global {
		if event.SequenceNumber < fromSequence {
			continue
		}

		result = append(result, event)

		if limit > 0 && uint(len(result)) == limit {
			break
		}
	}

	return result, nil
}
