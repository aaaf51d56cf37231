package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key guarding profile writes.
const DefaultKey = "envprofile:write_lock"

// ErrTimeout is returned when the lock could not be acquired in time.
var ErrTimeout = errors.New("timeout acquiring write lock")

// Locker serializes writers. Acquire returns an owner id that Release needs.
type Locker interface {
	Acquire(ctx context.Context) (string, error)
	Release(ctx context.Context, lockID string) error
}

// DistributedLock implements a global exclusive lock backed by Redis.
type DistributedLock struct {
	client         *redis.Client
	lockKey        string
	lockTTL        time.Duration
	acquireTimeout time.Duration
}

// New creates a DistributedLock.
//   - key: the Redis key used for the lock
//   - ttl: how long the lock is held before auto-expiry
//   - acquireTimeout: max time to wait when trying to acquire the lock
func New(client *redis.Client, key string, ttl, acquireTimeout time.Duration) *DistributedLock {
	if key == "" {
		key = DefaultKey
	}
	return &DistributedLock{
		client:         client,
		lockKey:        key,
		lockTTL:        ttl,
		acquireTimeout: acquireTimeout,
	}
}

// Acquire attempts to obtain the lock, blocking with exponential backoff
// until success or timeout. Returns a unique lockID used for Release.
func (l *DistributedLock) Acquire(ctx context.Context) (string, error) {
	lockID := uuid.New().String()
	deadline := time.Now().Add(l.acquireTimeout)
	backoff := 50 * time.Millisecond

	for {
		ok, err := l.client.SetNX(ctx, l.lockKey, lockID, l.lockTTL).Result()
		if err != nil {
			return "", fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return lockID, nil
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, l.acquireTimeout)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}

		backoff = nextBackoff(backoff)
	}
}

// nextBackoff doubles d, capped at 500ms.
func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > 500*time.Millisecond {
		d = 500 * time.Millisecond
	}
	return d
}

// releaseScript deletes the key only while it still holds the caller's id.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

// Release releases the lock only if it is still owned by the given lockID.
func (l *DistributedLock) Release(ctx context.Context, lockID string) error {
	_, err := releaseScript.Run(ctx, l.client, []string{l.lockKey}, lockID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
