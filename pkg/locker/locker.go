// Package locker provides distributed locking for coordinating work
// across service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker is a non-blocking distributed lock. Implementations
// must be safe for concurrent use.
//
//	acquired, err := locker.Acquire(ctx, "rankings:refresh", ttl)
//	if err != nil || !acquired {
//	    return
//	}
//	defer locker.Release(ctx, "rankings:refresh")
type DistributedLocker interface {
	// Acquire attempts to take the lock. Returns false without error
	// when another instance holds it. The lock expires after ttl if
	// never released, so a crashed holder cannot deadlock the others.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock. Releasing a lock this instance does
	// not own is a no-op.
	Release(ctx context.Context, key string) error
}
