package utils

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// CalculateExponentialBackoffWithJitter computes a jittered exponential backoff delay.
// - count: Retry attempt number (1-based, e.g., 1 for first retry)
// - base: Base delay (e.g., 20 * time.Millisecond)
// - max: Maximum allowable delay
func CalculateExponentialBackoffWithJitter(count int, base time.Duration, max time.Duration) time.Duration {
	if count <= 0 || base <= 0 {
		return 0
	}

	// Exponential backoff: base * 2^(count-1)
	baseDelay := base * time.Duration(math.Pow(2, float64(count-1)))

	// Jitter in [-12.5%, +12.5%) to avoid lockstep retries
	if quarter := int64(baseDelay / 4); quarter > 0 {
		baseDelay += time.Duration(rand.Int63n(quarter)) - (baseDelay / 8)
	}

	if baseDelay > max {
		baseDelay = max
	}
	return baseDelay
}

// RetryWithBackoff runs fn up to attempts times while retryable(err) holds, sleeping a jittered
// exponential delay between attempts. The last error is returned.
func RetryWithBackoff(ctx context.Context, attempts int, base, max time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(CalculateExponentialBackoffWithJitter(i, base, max)):
		}
	}
	return err
}
