// Package guardrails holds cross cutting safety helpers for sync runs
package guardrails

import (
	"context"
	"time"
)

// Timeouts is an optional budget bundle for a single sync window.
// Zero values mean no extra timeout at that level
type Timeouts struct {
	// Window is the overall time budget for processing one window
	Window time.Duration

	// Fetch caps the vendor API call
	Fetch time.Duration

	// DB caps the upsert step
	DB time.Duration
}

// ForWindow returns a context limited by the window budget without extending any parent deadline
func ForWindow(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Window)
}

// ForFetch returns a sub context for the fetch phase bounded by Fetch and any remaining parent budget
func ForFetch(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Fetch)
}

// ForDB returns a sub context for the db phase bounded by DB and any remaining parent budget
func ForDB(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.DB)
}

// Remaining returns the time until the deadline on ctx or zero when none is set or already expired
func Remaining(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		d := time.Until(dl)
		if d > 0 {
			return d
		}
	}
	return 0
}

// withChildTimeout bounds the child by the tighter of d and the parent
// remainder, never extending the parent deadline. Zero d yields a plain
// cancelable child.
func withChildTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if rem := Remaining(parent); rem > 0 {
		d = min(d, rem)
	}
	return context.WithTimeout(parent, d)
}
