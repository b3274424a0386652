package utils

import (
	"context"
	"fmt"
	"time"

	"petclinic/config"

	"github.com/google/uuid"
)

// BookingLock serializes the check-then-insert step of a booking commit for
// one (veterinarian, date) pair across server instances. Contention is scoped
// to that pair; no global lock is taken.
type BookingLock struct {
	key   string
	token string
}

func bookingLockKey(veterinarianID, date string) string {
	return fmt.Sprintf("sched:lock:%s:%s", veterinarianID, date)
}

// AcquireBookingLock takes the commit lock for the given veterinarian and
// date, waiting until ctx is done. The lock expires on its own after the
// configured TTL in case the holder dies mid-commit.
func AcquireBookingLock(ctx context.Context, veterinarianID, date string) (*BookingLock, error) {
	client := GetLockClient()
	lock := &BookingLock{
		key:   bookingLockKey(veterinarianID, date),
		token: uuid.New().String(),
	}
	ttl := time.Duration(config.AppConfig.BookingLockTTLSeconds) * time.Second

	for {
		ok, err := client.SetNX(ctx, lock.key, lock.token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire booking lock %s: %w", lock.key, err)
		}
		if ok {
			return lock, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for booking lock %s: %w", lock.key, ctx.Err())
		case <-time.After(25 * time.Millisecond):
		}
	}
}

// releaseScript deletes the lock only if it is still held by this token.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Release frees the lock. Releasing an expired or stolen lock is a no-op.
func (l *BookingLock) Release(ctx context.Context) error {
	client := GetLockClient()
	if err := client.Eval(ctx, releaseScript, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release booking lock %s: %w", l.key, err)
	}
	return nil
}
