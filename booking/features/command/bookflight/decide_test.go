package bookflight_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/features/command/bookflight"
	"github.com/tripmesh/bookingcore/booking/provider"
	"github.com/tripmesh/bookingcore/booking/shell"
)

func Test_Decide_Success_WhenOfferIsValid(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	command := bookflight.BuildCommand(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 2, "", now)
	offer := provider.OfferValidation{Valid: true, Price: 250, Capacity: 2}

	// act
	result := bookflight.Decide(nil, command, offer)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.FlightBooked)
	require.True(t, ok)
	assert.Equal(t, bookingID.String(), event.BookingID)
	assert.Equal(t, "OFR-1", event.OfferID)
	assert.Equal(t, 250.0, event.Price, "booked price comes from the provider validation")
	assert.Equal(t, core.DefaultCurrency, event.Currency)
	assert.Equal(t, core.DefaultPaymentMethod, event.PaymentMethod)
}

func Test_Decide_Idempotent_WhenBookingAlreadyConfirmed(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		givenFlightBooked(t, bookingID, now.Add(-time.Hour)),
	}

	command := bookflight.BuildCommand(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 2, "", now)

	// act
	result := bookflight.Decide(history, command, provider.OfferValidation{})

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenBookingWasCancelled(t *testing.T) {
	// arrange
	bookingID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		givenFlightBooked(t, bookingID, now.Add(-2*time.Hour)),
		core.BuildBookingCancelled(bookingID.String(), "customer request", 250, now.Add(-time.Hour)),
	}

	command := bookflight.BuildCommand(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 2, "", now)

	// act
	result := bookflight.Decide(history, command, provider.OfferValidation{Valid: true, Price: 250, Capacity: 2})

	// assert
	assert.False(t, result.HasEventsToAppend())
	assert.ErrorIs(t, result.HasError(), shell.ErrInvalidStateTransition)
}

func Test_Decide_Error_WhenOfferUnavailable(t *testing.T) {
	bookingID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name  string
		offer provider.OfferValidation
	}{
		{
			name:  "offer no longer valid",
			offer: provider.OfferValidation{Valid: false, Price: 250, Capacity: 2},
		},
		{
			name:  "capacity below party size",
			offer: provider.OfferValidation{Valid: true, Price: 250, Capacity: 1},
		},
		{
			name:  "no positive price",
			offer: provider.OfferValidation{Valid: true, Price: 0, Capacity: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := bookflight.BuildCommand(
				bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 2, "", now)

			// act
			result := bookflight.Decide(nil, command, tc.offer)

			// assert
			assert.False(t, result.HasEventsToAppend())
			assert.ErrorIs(t, result.HasError(), shell.ErrOfferUnavailable)
		})
	}
}

func Test_Command_Validate(t *testing.T) {
	bookingID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name    string
		command bookflight.Command
	}{
		{
			name:    "zero booking id",
			command: bookflight.BuildCommand(uuid.Nil, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 2, "", now),
		},
		{
			name:    "empty offer id",
			command: bookflight.BuildCommand(bookingID, "", "BER", "LIS", "2026-10-01", "2026-10-08", 2, "", now),
		},
		{
			name:    "empty departure",
			command: bookflight.BuildCommand(bookingID, "OFR-1", "", "LIS", "2026-10-01", "2026-10-08", 2, "", now),
		},
		{
			name:    "malformed depart date",
			command: bookflight.BuildCommand(bookingID, "OFR-1", "BER", "LIS", "01.10.2026", "2026-10-08", 2, "", now),
		},
		{
			name:    "return before departure",
			command: bookflight.BuildCommand(bookingID, "OFR-1", "BER", "LIS", "2026-10-08", "2026-10-01", 2, "", now),
		},
		{
			name:    "zero adults",
			command: bookflight.BuildCommand(bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 0, "", now),
		},
		{
			name:    "too many adults",
			command: bookflight.BuildCommand(bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 10, "", now),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.command.Validate(), shell.ErrValidation)
		})
	}
}

func givenFlightBooked(t *testing.T, bookingID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()

	return core.BuildFlightBooked(
		bookingID, "OFR-1", "BER", "LIS", "2026-10-01", "2026-10-08", 250, 2, core.DefaultPaymentMethod, at)
}
