package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when another holder owns the key.
var ErrNotAcquired = errors.New("lock is held by another owner")

// Lock is a held lease on a key.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker grants exclusive, expiring leases on string keys.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// Store keeps short lived values, such as replayable responses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
