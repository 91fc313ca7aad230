package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTestBuffer is the buffer time subtracted from the test deadline to
// leave room for cleanup before the test times out.
const DefaultTestBuffer = 2 * time.Second

// ContextWithTestDeadline creates a context that respects the test's deadline,
// or falls back to the given duration when the test has none.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.ContextWithTestDeadline(t, 10*time.Second)
//	    defer cancel()
//	    // ... test code using ctx
//	}
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		if time.Until(adjusted) > 0 && time.Until(adjusted) < fallback {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}
