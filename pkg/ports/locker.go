package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates access to a workspace across multiple instances.
type DistributedLocker interface {
	// Lock acquires a lock for the given key (e.g., workspace ID).
	// It blocks until the lock is acquired or the context is canceled.
	// The returned UnlockFunc must be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
