package mongo

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	maxReadAttempts = 3
	baseRetryDelay  = 50 * time.Millisecond
)

// WithReadRetry retries fn on transient Mongo failures (network errors and
// driver timeouts) with jittered backoff. Only safe for reads and other
// idempotent operations; writes must not be wrapped.
func WithReadRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay << (attempt - 1)
			delay += time.Duration(rand.Int63n(int64(delay)))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
