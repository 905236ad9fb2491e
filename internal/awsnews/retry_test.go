package awsnews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRetryPolicy = RetryPolicy{
	MaxAttempts:  5,
	BaseDelay:    time.Microsecond,
	GrowthFactor: 1.3,
}

func TestDoWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	result, err := doWithRetry(context.Background(), testRetryPolicy, func() (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 1, calls)
}

func TestDoWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	result, err := doWithRetry(context.Background(), testRetryPolicy, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoWithRetry_ExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	lastErr := errors.New("still broken")
	_, err := doWithRetry(context.Background(), testRetryPolicy, func() (int, error) {
		calls++
		if calls < testRetryPolicy.MaxAttempts {
			return 0, errors.New("earlier failure")
		}
		return 0, lastErr
	})

	assert.Equal(t, testRetryPolicy.MaxAttempts, calls)
	assert.ErrorIs(t, err, lastErr)
}

func TestDoWithRetry_ContextCancellationStopsWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	slowPolicy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Hour, GrowthFactor: 1.3}
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := doWithRetry(ctx, slowPolicy, func() (int, error) {
			calls++
			return 0, errors.New("fail")
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not honor context cancellation")
	}
}
