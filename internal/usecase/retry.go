package usecase

import (
	"context"
	"log"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// RetryPolicy bounds how often a single-attempt operation is repeated
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Result carries either a populated record or an empty marker with the
// last failure seen. An empty Result is a valid degraded outcome.
type Result[T any] struct {
	Value    T
	Found    bool
	Attempts int
	LastErr  error
}

// Empty reports whether no attempt produced a record
func (r Result[T]) Empty() bool {
	return !r.Found
}

// Retry runs op up to policy.MaxAttempts times, sleeping policy.Delay
// between failed attempts. Failures are logged and never returned; once
// attempts are exhausted or ctx is done an empty Result is returned.
func Retry[T any](ctx context.Context, source string, policy RetryPolicy, op func(ctx context.Context) (T, error)) Result[T] {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var result Result[T]
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result.Attempts = attempt

		value, err := op(ctx)
		if err == nil {
			result.Value = value
			result.Found = true
			result.LastErr = nil
			return result
		}

		result.LastErr = err
		log.Printf("[Retry] %s attempt %d/%d failed (%s): %v",
			source, attempt, maxAttempts, domain.FailureKind(err), err)

		if attempt == maxAttempts {
			break
		}
		if !sleep(ctx, policy.Delay) {
			result.LastErr = ctx.Err()
			log.Printf("[Retry] %s abandoned after %d attempts: %v", source, attempt, ctx.Err())
			return result
		}
	}

	log.Printf("[Retry] %s exhausted %d attempts, returning empty result", source, maxAttempts)
	return result
}

// sleep waits for d or until ctx is done; it reports whether the full delay elapsed
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
