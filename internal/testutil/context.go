package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test that passes no timeout of its own.
const DefaultTimeout = 5 * time.Second

// Context returns a context canceled when the test ends or the timeout
// elapses, whichever comes first. The timeout is clipped so it fires
// before the test binary's own deadline.
func Context(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// Canceled returns a context that is already canceled.
func Canceled(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
