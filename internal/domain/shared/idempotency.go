package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed delivery IDs so a redelivered webhook
// is acknowledged without being applied twice.
type IdempotencyStore interface {
	// MarkProcessed records key for ttl. It returns true when the key was
	// newly recorded and false when it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget removes key so a later delivery is processed again.
	Forget(ctx context.Context, key string) error

	Close() error
}
