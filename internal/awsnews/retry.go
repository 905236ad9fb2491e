package awsnews

import (
	"context"
	"math"
	"time"
)

// RetryPolicy describes bounded exponential-backoff retry for upstream
// calls. Every failure is retried the same way: the upstream gives us no
// reliable way to tell transient from permanent, and downstream dedup plus
// idempotent storage absorb a double-fetch.
type RetryPolicy struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	GrowthFactor float64
}

// defaultRetryPolicy matches the tolerances the public API has needed in
// practice: five attempts with delays of 1s, 1.3s, 1.69s, 2.2s.
var defaultRetryPolicy = RetryPolicy{
	MaxAttempts:  5,
	BaseDelay:    time.Second,
	GrowthFactor: 1.3,
}

// doWithRetry invokes fn until it succeeds or attempts are exhausted,
// waiting BaseDelay * GrowthFactor^attempt between attempts. The final
// attempt's error is returned as-is. The wait honors ctx cancellation.
func doWithRetry[T any](ctx context.Context, policy RetryPolicy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < policy.MaxAttempts-1 {
			delay := time.Duration(float64(policy.BaseDelay) * math.Pow(policy.GrowthFactor, float64(attempt)))
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}
