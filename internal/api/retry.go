package api

import (
	"context"
	"time"
)

// DefaultRetryUnit is the backoff step between transport retries.
const DefaultRetryUnit = time.Second

// WithRetry runs op, retrying only transport failures. After the n-th
// failed attempt it waits n*unit before trying again, for at most
// maxRetries extra attempts. Any other error, including an HTTP error
// response, is returned after the attempt that produced it. When retries
// run out the last transport error is returned unchanged. A negative
// maxRetries is treated as zero; op always runs at least once.
func WithRetry[T any](ctx context.Context, maxRetries int, unit time.Duration, op func(context.Context) (T, error)) (T, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	var zero T
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !IsTransport(err) {
			return zero, err
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}
		t := time.NewTimer(time.Duration(attempt+1) * unit)
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		case <-t.C:
		}
	}
	return zero, lastErr
}
