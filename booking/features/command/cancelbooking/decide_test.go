package cancelbooking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/features/command/cancelbooking"
	"github.com/tripmesh/bookingcore/booking/shell"
)

func Test_Decide_Success_RefundsCurrentPrice(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		givenFlightBooked(t, bookingID, 250, now.Add(-3*time.Hour)),
		core.BuildBookingAmended(bookingID.String(), "2026-10-02", "2026-10-09", 2, 300, now.Add(-time.Hour)),
	}

	command := cancelbooking.BuildCommand(bookingID, "customer request", now)

	// act
	result := cancelbooking.Decide(history, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.BookingCancelled)
	require.True(t, ok)
	assert.Equal(t, "customer request", event.Reason)
	assert.Equal(t, 300.0, event.RefundAmount, "refund follows the amended price")
}

func Test_Decide_Idempotent_WhenAlreadyCancelled(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		givenFlightBooked(t, bookingID, 250, now.Add(-2*time.Hour)),
		core.BuildBookingCancelled(bookingID.String(), "customer request", 250, now.Add(-time.Hour)),
	}

	command := cancelbooking.BuildCommand(bookingID, "customer request", now)

	// act
	result := cancelbooking.Decide(history, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenBookingDoesNotExist(t *testing.T) {
	// arrange
	command := cancelbooking.BuildCommand(uuid.New(), "customer request", time.Now())

	// act
	result := cancelbooking.Decide(nil, command)

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.ErrorIs(t, result.HasError(), shell.ErrInvalidStateTransition)
}

func givenFlightBooked(t *testing.T, bookingID uuid.UUID, price float64, at time.Time) core.DomainEvent {
	t.Helper()

	return core.BuildFlightBooked(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", price, 2, core.DefaultPaymentMethod, at)
}
