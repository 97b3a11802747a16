// Package retry wraps cenkalti/backoff with the per-call-site policies the
// pipeline stages use at their external-call boundaries.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retried operation: total attempts (including the first)
// and the exponential delay between them.
type Policy struct {
	Attempts   uint64
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Initial
	b.MaxInterval = p.Max
	b.Multiplier = p.Multiplier
	b.MaxElapsedTime = 0

	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, attempts-1), ctx)
}

// Do runs op until it succeeds, returns a permanent error, or the attempt cap
// is reached. The last error is returned when attempts are exhausted.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(op, p.backOff(ctx))
}

// Permanent marks err as non-retryable so Do surfaces it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
