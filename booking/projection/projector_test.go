package projection_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/projection"
	"github.com/tripmesh/bookingcore/booking/readmodel"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
	"github.com/tripmesh/bookingcore/eventstore/memoryengine"
)

func Test_Apply_IsIdempotent(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	bookingID := uuid.New()
	stored := givenAppendedFlightBooking(t, log, bookingID)

	// act - apply the same event twice
	require.NoError(t, projector.Apply(ctx, stored[0]))
	rowAfterFirst, err := store.Get(ctx, bookingID.String())
	require.NoError(t, err)

	require.NoError(t, projector.Apply(ctx, stored[0]))
	rowAfterSecond, err := store.Get(ctx, bookingID.String())
	require.NoError(t, err)

	// assert
	assert.Equal(t, rowAfterFirst, rowAfterSecond)
}

func Test_Apply_FoldsFullLifecycle(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	bookingID := uuid.New()
	stored := givenAppendedFlightBooking(t, log, bookingID)

	amended := core.BuildBookingAmended(bookingID.String(), "2026-10-02", "2026-10-09", 3, 320, time.Now())
	cancelled := core.BuildBookingCancelled(bookingID.String(), "schedule change", 320, time.Now())

	moreStored := givenAppended(t, log, bookingID, 1, amended, cancelled)
	stored = append(stored, moreStored...)

	// act
	for _, storedEvent := range stored {
		require.NoError(t, projector.Apply(ctx, storedEvent))
	}

	// assert
	row, err := store.Get(ctx, bookingID.String())
	require.NoError(t, err)
	assert.Equal(t, core.StatusCancelled, row.Status)
	assert.Equal(t, "2026-10-02", row.DepartDate)
	assert.Equal(t, uint(3), row.Adults)
	assert.Equal(t, 320.0, row.Price)
	assert.Equal(t, 320.0, row.RefundAmount)
	assert.Equal(t, "schedule change", row.CancellationReason)
	assert.EqualValues(t, 3, row.LastVersion)
}

func Test_Apply_FoldsMissingRange_WhenEventArrivesWithVersionGap(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	bookingID := uuid.New()
	stored := givenAppendedFlightBooking(t, log, bookingID)

	amended := core.BuildBookingAmended(bookingID.String(), "2026-10-02", "2026-10-09", 3, 320, time.Now())
	cancelled := core.BuildBookingCancelled(bookingID.String(), "schedule change", 320, time.Now())
	stored = append(stored, givenAppended(t, log, bookingID, 1, amended, cancelled)...)

	// act - version 3 arrives while version 2 was never projected
	require.NoError(t, projector.Apply(ctx, stored[0]))
	require.NoError(t, projector.Apply(ctx, stored[2]))

	// assert - the amendment must not be skipped over
	row, getErr := store.Get(ctx, bookingID.String())
	require.NoError(t, getErr)
	assert.Equal(t, 320.0, row.Price)
	assert.Equal(t, uint(3), row.Adults)
	assert.Equal(t, "2026-10-02", row.DepartDate)
	assert.Equal(t, core.StatusCancelled, row.Status)
	assert.EqualValues(t, 3, row.LastVersion)

	// the late arrival of version 2 changes nothing
	require.NoError(t, projector.Apply(ctx, stored[1]))
	rowAfterLateEvent, getErr := store.Get(ctx, bookingID.String())
	require.NoError(t, getErr)
	assert.Equal(t, row, rowAfterLateEvent)

	// and the row equals the replayed ground truth
	require.NoError(t, projector.Rebuild(ctx, bookingID.String()))
	rebuilt, getErr := store.Get(ctx, bookingID.String())
	require.NoError(t, getErr)
	assert.Equal(t, rebuilt, row)
}

func Test_Rebuild_MatchesIncrementalProjection(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	bookingID := uuid.New()
	stored := givenAppendedFlightBooking(t, log, bookingID)

	amended := core.BuildBookingAmended(bookingID.String(), "2026-10-02", "2026-10-09", 3, 320, time.Now())
	stored = append(stored, givenAppended(t, log, bookingID, 1, amended)...)

	for _, storedEvent := range stored {
		require.NoError(t, projector.Apply(ctx, storedEvent))
	}

	incremental, err := store.Get(ctx, bookingID.String())
	require.NoError(t, err)

	// act - drop and rebuild from the log
	require.NoError(t, projector.Rebuild(ctx, bookingID.String()))

	// assert
	rebuilt, err := store.Get(ctx, bookingID.String())
	require.NoError(t, err)
	assert.Equal(t, incremental, rebuilt, "replaying the log must reproduce the same row")
}

func Test_RebuildAll_RebuildsEveryAggregate(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	givenAppendedFlightBooking(t, log, first)
	givenAppendedFlightBooking(t, log, second)

	// act
	require.NoError(t, projector.RebuildAll(ctx))

	// assert
	rows, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func Test_RebuildAll_SkipsAggregateWithUnknownEventType(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	healthy := uuid.New()
	givenAppendedFlightBooking(t, log, healthy)

	poisoned := uuid.New()
	unknown, err := eventstore.BuildStorableEventWithEmptyMetadata(
		uuid.New().String(), poisoned.String(), "SomethingUnrecognized", time.Now().UTC(), []byte(`{}`))
	require.NoError(t, err)

	_, appendErr := log.Append(ctx, poisoned.String(), 0, unknown)
	require.NoError(t, appendErr)

	// act
	rebuildErr := projector.RebuildAll(ctx)

	// assert - the poisoned aggregate is reported, the healthy one still rebuilds
	assert.ErrorIs(t, rebuildErr, projection.ErrRebuildFailed)

	_, getErr := store.Get(ctx, healthy.String())
	assert.NoError(t, getErr)

	_, poisonedErr := store.Get(ctx, poisoned.String())
	assert.ErrorIs(t, poisonedErr, readmodel.ErrBookingRowNotFound)
}

func Test_Rebuild_RemovesRowWhenAggregateHasNoEvents(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	ctx := context.Background()

	bookingID := uuid.New()
	require.NoError(t, store.Upsert(ctx, readmodel.BookingRow{BookingID: bookingID.String()}))

	// act
	require.NoError(t, projector.Rebuild(ctx, bookingID.String()))

	// assert
	_, err := store.Get(ctx, bookingID.String())
	assert.ErrorIs(t, err, readmodel.ErrBookingRowNotFound)
}

func givenAppendedFlightBooking(t *testing.T, log shell.EventLog, bookingID uuid.UUID) eventstore.StoredEvents {
	t.Helper()

	event := core.BuildFlightBooked(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 250, 2,
		core.DefaultPaymentMethod, time.Now().Add(-time.Hour))

	return givenAppended(t, log, bookingID, 0, event)
}

func givenAppended(
	t *testing.T,
	log shell.EventLog,
	bookingID uuid.UUID,
	expectedVersion eventstore.VersionUint,
	events ...core.DomainEvent,
) eventstore.StoredEvents {
	t.Helper()

	storableEvents, err := shell.StorableEventsFrom(events, bookingID.String())
	require.NoError(t, err)

	stored, appendErr := log.Append(context.Background(), bookingID.String(), expectedVersion, storableEvents...)
	require.NoError(t, appendErr)

	return stored
}
