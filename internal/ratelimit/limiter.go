// Package ratelimit bounds how fast a single user can drive the panel.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrLimitExceeded accompanies a denying Result when the key has exhausted
// its window.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Result describes one admission decision.
type Result struct {
	// Allowed reports whether the update may proceed.
	Allowed bool
	// Remaining is how many requests are left in the current window.
	Remaining int
	// ResetAt is when the oldest counted request falls out of the window.
	ResetAt time.Time
}

// Limiter admits or rejects a single request under a sliding window keyed by
// caller identity.
type Limiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
