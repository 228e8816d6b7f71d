package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
)

func Test_Retry_SucceedsOnFirstAttempt(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return nil
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, metrics.Attempts)
	assert.Zero(t, metrics.TotalDelay)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_Retry_RetriesOnConcurrencyConflict(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		if calls == 1 {
			return eventstore.ErrConcurrencyConflict
		}
		return nil
	}, shell.WithBaseDelay(time.Millisecond))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, metrics.Attempts)
	assert.Positive(t, metrics.TotalDelay)
}

func Test_Retry_DoesNotRetryOtherErrors(t *testing.T) {
	// arrange
	calls := 0
	boom := errors.New("boom")

	// act
	_, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return boom
	})

	// assert
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func Test_Retry_ExhaustsAttempts(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return eventstore.ErrConcurrencyConflict
	}, shell.WithMaxAttempts(3), shell.WithBaseDelay(time.Millisecond))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, calls)
	assert.True(t, metrics.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", metrics.LastErrorType)
}

func Test_Retry_StopsWhenContextIsCancelled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())

	// act
	_, err := shell.RetryWithExponentialBackoff(ctx, func(_ context.Context) error {
		cancel()
		return eventstore.ErrConcurrencyConflict
	}, shell.WithBaseDelay(10*time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Retry_RejectsInvalidOptions(t *testing.T) {
	noop := func(_ context.Context) error { return nil }

	_, attemptsErr := shell.RetryWithExponentialBackoff(context.Background(), noop, shell.WithMaxAttempts(0))
	assert.ErrorIs(t, attemptsErr, shell.ErrInvalidMaxAttempts)

	_, delayErr := shell.RetryWithExponentialBackoff(context.Background(), noop, shell.WithBaseDelay(-time.Second))
	assert.ErrorIs(t, delayErr, shell.ErrNegativeBaseDelay)

	_, jitterErr := shell.RetryWithExponentialBackoff(context.Background(), noop, shell.WithJitterFactor(1.5))
	assert.ErrorIs(t, jitterErr, shell.ErrInvalidJitterFactor)
}
