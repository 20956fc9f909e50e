package upstream

import (
	"context"
	"math/rand"
	"time"
)

const maxJitter = time.Second

// Retry invokes op up to retries+1 times. Before each retry it waits the
// current delay, then grows it by 1.5x plus up to one second of jitter. The
// wrapped operation must be safe to repeat; the AI backend tolerates duplicate
// submissions for the calls routed through here.
func Retry[T any](ctx context.Context, retries int, delay time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
			delay = delay*3/2 + time.Duration(rand.Int63n(int64(maxJitter)))
		}

		res, err := op(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, lastErr
		}
	}

	return zero, lastErr
}
