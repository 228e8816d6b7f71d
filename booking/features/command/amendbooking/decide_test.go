package amendbooking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/features/command/amendbooking"
	"github.com/tripmesh/bookingcore/booking/shell"
)

func Test_Decide_Success_WhenBookingIsConfirmed(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		givenHotelBooked(t, bookingID, now.Add(-time.Hour)),
	}

	command := amendbooking.BuildCommand(bookingID, "2026-11-01", "2026-11-10", 3, 420, now)

	// act
	result := amendbooking.Decide(history, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.BookingAmended)
	require.True(t, ok)
	assert.Equal(t, "2026-11-01", event.StartDate)
	assert.Equal(t, "2026-11-10", event.EndDate)
	assert.Equal(t, uint(3), event.Adults)
	assert.Equal(t, 420.0, event.Price)
}

func Test_Decide_Idempotent_WhenNothingChanges(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		givenHotelBooked(t, bookingID, now.Add(-2*time.Hour)),
		core.BuildBookingAmended(bookingID.String(), "2026-11-01", "2026-11-10", 3, 420, now.Add(-time.Hour)),
	}

	command := amendbooking.BuildCommand(bookingID, "2026-11-01", "2026-11-10", 3, 420, now)

	// act
	result := amendbooking.Decide(history, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Errors(t *testing.T) {
	bookingID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name    string
		history core.DomainEvents
	}{
		{
			name:    "booking does not exist",
			history: nil,
		},
		{
			name: "booking is cancelled",
			history: core.DomainEvents{
				givenHotelBooked(t, bookingID, now.Add(-2*time.Hour)),
				core.BuildBookingCancelled(bookingID.String(), "customer request", 300, now.Add(-time.Hour)),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := amendbooking.BuildCommand(bookingID, "2026-11-01", "2026-11-10", 3, 420, now)

			// act
			result := amendbooking.Decide(tc.history, command)

			// assert
			assert.False(t, result.HasEventsToAppend())
			assert.ErrorIs(t, result.HasError(), shell.ErrInvalidStateTransition)
		})
	}
}

func givenHotelBooked(t *testing.T, bookingID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()

	return core.BuildHotelBooked(
		bookingID, "OFR-7", "Hotel Mira", "Lisbon", "2026-11-01", "2026-11-08", 300, 2,
		core.DefaultPaymentMethod, at)
}
