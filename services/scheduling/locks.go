package scheduling

import (
	"context"
	"sync"

	"petclinic/utils"
)

// CommitLocker serializes booking commits for one (veterinarian, date) pair
// across server instances. The in-process dayLockStore below covers the
// single-instance path; a CommitLocker extends the discipline cluster-wide.
type CommitLocker interface {
	// Lock blocks until the pair's lock is held and returns the release func.
	Lock(ctx context.Context, veterinarianID, date string) (func(context.Context), error)
}

// RedisCommitLocker implements CommitLocker on the shared Redis lock client.
type RedisCommitLocker struct{}

func (RedisCommitLocker) Lock(ctx context.Context, veterinarianID, date string) (func(context.Context), error) {
	lock, err := utils.AcquireBookingLock(ctx, veterinarianID, date)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) {
		_ = lock.Release(ctx)
	}, nil
}

// dayLockStore holds a map of (veterinarian, date) keys to their mutexes.
// The zero value is ready to use.
type dayLockStore struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

// get returns the mutex for a given key, creating one if it doesn't exist.
func (s *dayLockStore) get(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	lock, exists := s.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
