// Package idempotency suppresses duplicate Telegram update deliveries.
// Telegram re-sends updates it considers unacknowledged; the panel must not
// re-run a handler for a delivery it has already processed.
package idempotency

import (
	"context"
	"time"
)

// Deduper remembers processed update keys for a bounded time.
type Deduper interface {
	// MarkProcessed records the key and reports whether it was seen before.
	// A true result means the update is a duplicate delivery.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
