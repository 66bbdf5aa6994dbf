package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBackoff = 500 * time.Millisecond

type retrying struct {
	inner    Provider
	attempts int
	backoff  time.Duration
}

// WithRetry wraps a provider with a fixed number of attempts and exponential
// backoff. Exhausting the attempts returns the last error; callers treat that
// as a per-item failure, never a run-level abort.
func WithRetry(p Provider, attempts int) Provider {
	if attempts < 1 {
		attempts = 1
	}
	return &retrying{inner: p, attempts: attempts, backoff: defaultBackoff}
}

func (r *retrying) Complete(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	delay := r.backoff
	made := 0

	for attempt := 1; attempt <= r.attempts; attempt++ {
		resp, err := r.inner.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		made = attempt

		if !retryable(err) || attempt == r.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("llm: after %d attempt(s): %w", made, lastErr)
}

// retryable treats throttling, server errors, and transport failures as
// transient. Other HTTP errors (bad request, auth) will not get better.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return true
}
