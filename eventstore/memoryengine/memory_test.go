package memoryengine_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/eventstore"
	"github.com/tripmesh/bookingcore/eventstore/memoryengine"
)

func Test_Append_AssignsGaplessVersionsFromOne(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateID := uuid.New().String()

	// act
	first, firstErr := es.Append(ctx, aggregateID, 0, givenStorableEvent(t, aggregateID))
	second, secondErr := es.Append(ctx, aggregateID, 1, givenStorableEvent(t, aggregateID))
	third, thirdErr := es.Append(ctx, aggregateID, 2, givenStorableEvent(t, aggregateID))

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	require.NoError(t, thirdErr)
	assert.Equal(t, eventstore.VersionUint(1), first[0].Version)
	assert.Equal(t, eventstore.VersionUint(2), second[0].Version)
	assert.Equal(t, eventstore.VersionUint(3), third[0].Version)
}

func Test_Append_ConflictsOnStaleExpectedVersion(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateID := uuid.New().String()

	_, err := es.Append(ctx, aggregateID, 0, givenStorableEvent(t, aggregateID))
	require.NoError(t, err)

	// act - a second writer still assuming an empty stream
	_, conflictErr := es.Append(ctx, aggregateID, 0, givenStorableEvent(t, aggregateID))

	// assert
	assert.ErrorIs(t, conflictErr, eventstore.ErrConcurrencyConflict)

	stream, readErr := es.Read(ctx, aggregateID, 1)
	require.NoError(t, readErr)
	assert.Len(t, stream, 1, "losing append must not become visible")
}

func Test_Append_BatchIsAtomicAndConsecutive(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateID := uuid.New().String()

	// act
	stored, err := es.Append(ctx, aggregateID, 0,
		givenStorableEvent(t, aggregateID),
		givenStorableEvent(t, aggregateID),
		givenStorableEvent(t, aggregateID),
	)

	// assert
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for i, event := range stored {
		assert.Equal(t, eventstore.VersionUint(i+1), event.Version)
	}
}

func Test_Append_RejectsEmptyBatchAndForeignEvents(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateID := uuid.New().String()

	// act + assert
	_, emptyErr := es.Append(ctx, aggregateID, 0)
	assert.ErrorIs(t, emptyErr, eventstore.ErrNoEventsToAppend)

	_, mixedErr := es.Append(ctx, aggregateID, 0, givenStorableEvent(t, uuid.New().String()))
	assert.ErrorIs(t, mixedErr, eventstore.ErrMixedAggregateIDs)
}

func Test_Read_ReturnsAscendingVersionsFromOffset(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateID := uuid.New().String()

	for i := 0; i < 5; i++ {
		_, err := es.Append(ctx, aggregateID, eventstore.VersionUint(i), givenStorableEvent(t, aggregateID))
		require.NoError(t, err)
	}

	// act
	stream, err := es.Read(ctx, aggregateID, 3)

	// assert
	require.NoError(t, err)
	require.Len(t, stream, 3)
	assert.Equal(t, eventstore.VersionUint(3), stream[0].Version)
	assert.Equal(t, eventstore.VersionUint(5), stream[2].Version)
}

func Test_Read_UnknownAggregateIsEmptyNotError(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()

	// act
	stream, err := es.Read(context.Background(), uuid.New().String(), 1)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, stream)
}

func Test_ReadAll_GlobalOrderAndResumption(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateA := uuid.New().String()
	aggregateB := uuid.New().String()

	_, _ = es.Append(ctx, aggregateA, 0, givenStorableEvent(t, aggregateA))
	_, _ = es.Append(ctx, aggregateB, 0, givenStorableEvent(t, aggregateB))
	_, _ = es.Append(ctx, aggregateA, 1, givenStorableEvent(t, aggregateA))

	// act
	all, allErr := es.ReadAll(ctx, 1, 0)
	limited, limitedErr := es.ReadAll(ctx, 1, 2)
	resumed, resumedErr := es.ReadAll(ctx, limited[len(limited)-1].SequenceNumber+1, 0)

	// assert
	require.NoError(t, allErr)
	require.NoError(t, limitedErr)
	require.NoError(t, resumedErr)

	require.Len(t, all, 3)
	for i, event := range all {
		assert.Equal(t, eventstore.SequenceNumberUint(i+1), event.SequenceNumber)
	}

	assert.Len(t, limited, 2)
	require.Len(t, resumed, 1)
	assert.Equal(t, all[2].EventID, resumed[0].EventID)
}

func Test_Append_ConcurrentWritersProduceGaplessStream(t *testing.T) {
	// arrange
	es := memoryengine.NewEventStore()
	ctx := context.Background()
	aggregateID := uuid.New().String()

	const writers = 8
	const appendsPerWriter = 10

	var wg sync.WaitGroup

	// act - every writer retries on conflict with a fresh expected version
	for w := 0; w < writers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < appendsPerWriter; i++ {
				for {
					stream, readErr := es.Read(ctx, aggregateID, 1)
					if !assert.NoError(t, readErr) {
						return
					}

					_, appendErr := es.Append(
						ctx, aggregateID, eventstore.VersionUint(len(stream)), givenStorableEvent(t, aggregateID))
					if appendErr == nil {
						break
					}

					if !assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict) {
						return
					}
				}
			}
		}()
	}

	wg.Wait()

	// assert
	stream, err := es.Read(ctx, aggregateID, 1)
	require.NoError(t, err)
	require.Len(t, stream, writers*appendsPerWriter)

	for i, event := range stream {
		assert.Equal(t, eventstore.VersionUint(i+1), event.Version, "versions must be gapless")
	}
}

func givenStorableEvent(t *testing.T, aggregateID string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		uuid.New().String(),
		aggregateID,
		"SomethingHappened",
		time.Now().UTC(),
		[]byte(fmt.Sprintf(`{"n":%d}`, time.Now().UnixNano())),
	)
	require.NoError(t, err)

	return event
}
