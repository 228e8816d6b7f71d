package amendbooking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/features/command/amendbooking"
	"github.com/tripmesh/bookingcore/booking/features/command/cancelbooking"
	"github.com/tripmesh/bookingcore/booking/projection"
	"github.com/tripmesh/bookingcore/booking/readmodel"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
	"github.com/tripmesh/bookingcore/eventstore/memoryengine"
)

func Test_Handle_Success_AmendsConfirmedBooking(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	handler := amendbooking.NewCommandHandler(log, projector)

	bookingID := uuid.New()
	givenConfirmedFlightBooking(t, log, projector, bookingID)

	command := amendbooking.BuildCommand(bookingID, "2026-10-02", "2026-10-09", 3, 320, time.Now())

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.StatusConfirmed, result.Status)

	stream, readErr := log.Read(context.Background(), bookingID.String(), 1)
	require.NoError(t, readErr)
	require.Len(t, stream, 2)
	assert.Equal(t, core.BookingAmendedEventType, stream[1].EventType)
	assert.EqualValues(t, 2, stream[1].Version)

	row, getErr := store.Get(context.Background(), bookingID.String())
	require.NoError(t, getErr)
	assert.Equal(t, "2026-10-02", row.DepartDate)
	assert.Equal(t, uint(3), row.Adults)
	assert.Equal(t, 320.0, row.Price)
	assert.EqualValues(t, 2, row.LastVersion)
}

func Test_Handle_Redelivery_IsIdempotent(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)
	handler := amendbooking.NewCommandHandler(log, projector)

	bookingID := uuid.New()
	givenConfirmedFlightBooking(t, log, projector, bookingID)

	command := amendbooking.BuildCommand(bookingID, "2026-10-02", "2026-10-09", 3, 320, time.Now())

	_, firstErr := handler.Handle(context.Background(), command)
	require.NoError(t, firstErr)

	// act - the same amendment arrives again
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)

	stream, readErr := log.Read(context.Background(), bookingID.String(), 1)
	require.NoError(t, readErr)
	assert.Len(t, stream, 2)
}

func Test_Handle_LaterCommandRepairsRow_AfterProjectionFailure(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	projector := projection.NewProjector(log, store, nil)

	bookingID := uuid.New()
	givenConfirmedFlightBooking(t, log, projector, bookingID)

	// the amendment's event becomes durable, but its projection fails
	amendHandler := amendbooking.NewCommandHandler(log, failingProjector{})
	amendCommand := amendbooking.BuildCommand(bookingID, "2026-10-02", "2026-10-09", 3, 320, time.Now())

	result, amendErr := amendHandler.Handle(context.Background(), amendCommand)
	require.ErrorIs(t, amendErr, shell.ErrProjectionFailed)
	assert.True(t, result.ReadModelStale)

	staleRow, getErr := store.Get(context.Background(), bookingID.String())
	require.NoError(t, getErr)
	require.EqualValues(t, 1, staleRow.LastVersion)

	// act - a later cancellation projects with a healthy projector
	cancelHandler := cancelbooking.NewCommandHandler(log, projector)
	_, cancelErr := cancelHandler.Handle(
		context.Background(), cancelbooking.BuildCommand(bookingID, "schedule change", time.Now()))

	// assert - the row carries the amendment the failed projection skipped
	require.NoError(t, cancelErr)

	row, rowErr := store.Get(context.Background(), bookingID.String())
	require.NoError(t, rowErr)
	assert.Equal(t, core.StatusCancelled, row.Status)
	assert.Equal(t, "2026-10-02", row.DepartDate)
	assert.Equal(t, uint(3), row.Adults)
	assert.Equal(t, 320.0, row.Price)
	assert.Equal(t, 320.0, row.RefundAmount)
	assert.EqualValues(t, 3, row.LastVersion)
}

func Test_Handle_Error_WhenBookingDoesNotExist(t *testing.T) {
	// arrange
	log := memoryengine.NewEventStore()
	store := readmodel.NewMemoryStore()
	handler := amendbooking.NewCommandHandler(log, projection.NewProjector(log, store, nil))

	command := amendbooking.BuildCommand(uuid.New(), "2026-10-02", "2026-10-09", 3, 320, time.Now())

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, shell.ErrInvalidStateTransition)
}

func givenConfirmedFlightBooking(
	t *testing.T,
	log shell.EventLog,
	projector shell.ReadModelProjector,
	bookingID uuid.UUID,
) {
	t.Helper()

	event := core.BuildFlightBooked(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 250, 2,
		core.DefaultPaymentMethod, time.Now().Add(-time.Hour))

	storableEvents, err := shell.StorableEventsFrom(core.DomainEvents{event}, bookingID.String())
	require.NoError(t, err)

	stored, appendErr := log.Append(context.Background(), bookingID.String(), 0, storableEvents...)
	require.NoError(t, appendErr)

	for _, storedEvent := range stored {
		require.NoError(t, projector.Apply(context.Background(), storedEvent))
	}
}

type failingProjector struct{}

func (failingProjector) Apply(_ context.Context, _ eventstore.StoredEvent) error {
	return errors.New("read model store unavailable")
}
