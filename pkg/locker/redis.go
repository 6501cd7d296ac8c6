package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker on Redsync's Redlock
// implementation. Ownership tokens live inside the redsync mutexes, so
// only the acquiring instance can release a lock.
type RedisLocker struct {
	rs      *redsync.Redsync
	logger  *zap.Logger
	mutexes map[string]*redsync.Mutex
	mu      sync.Mutex
}

// NewRedisLocker creates a Redis-based distributed locker.
func NewRedisLocker(client *redis.Client, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		rs:      redsync.New(goredis.NewPool(client)),
		logger:  logger,
		mutexes: make(map[string]*redsync.Mutex),
	}
}

// Acquire attempts to take the lock with a single try. Contention is
// reported as (false, nil); only transport failures surface as errors.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	mutex := r.rs.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		// Redsync reports contention either as ErrFailed or as a
		// wrapped "lock already taken" error.
		if errors.Is(err, redsync.ErrFailed) || strings.Contains(err.Error(), "lock already taken") {
			r.logger.Debug("lock held by another instance", zap.String("key", key))
			return false, nil
		}

		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.mu.Lock()
	r.mutexes[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired", zap.String("key", key), zap.Duration("ttl", ttl))

	return true, nil
}

// Release releases the lock if this instance owns it.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, owned := r.mutexes[key]
	delete(r.mutexes, key)
	r.mu.Unlock()

	if !owned {
		return nil
	}

	if _, err := mutex.UnlockContext(ctx); err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}

	r.logger.Debug("lock released", zap.String("key", key))

	return nil
}
