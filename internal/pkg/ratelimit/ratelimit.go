// Package ratelimit provides fixed-window request throttling keyed by an
// arbitrary string, typically a client IP.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a keyed action is allowed within the current window.
type Limiter interface {
	// Allow increments the counter for key and reports whether it is still
	// within the limit. The returned retryAfter is how long until the window
	// resets; it is only meaningful when allowed is false.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
