package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
)

// DefaultLockTimeout bounds how long a mutation waits for its
// (user, date) slot before giving up with ErrBusy.
const DefaultLockTimeout = 2 * time.Second

// lockTimeoutFromEnv reads VISITS_LOCK_TIMEOUT_MS, falling back to
// DefaultLockTimeout for unset or invalid values.
func lockTimeoutFromEnv() time.Duration {
	if ms := os.Getenv("VISITS_LOCK_TIMEOUT_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			return time.Duration(v) * time.Millisecond
		}
	}
	return DefaultLockTimeout
}

// sessionLocker serializes mutations per (user, date). Two concurrent
// operations on the same key race on "what is the last entry"; the lock
// covers the whole read-decide-write transaction so only one of them can
// hold that belief at a time. Different keys proceed in parallel.
//
// Lock slots are one-element channels so acquisition can be bounded by a
// timeout and cancelled with the context. Slots are retained for the
// process lifetime: the key space is (user, day) pairs actually touched,
// which stays small for the workloads this service sees.
type sessionLocker struct {
	mu      sync.Mutex
	slots   map[string]chan struct{}
	timeout time.Duration
}

func newSessionLocker(timeout time.Duration) *sessionLocker {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &sessionLocker{
		slots:   make(map[string]chan struct{}),
		timeout: timeout,
	}
}

// acquire blocks until the (user, date) slot is free, the timeout
// elapses, or ctx is cancelled. On success the returned release func
// must be called exactly once.
func (l *sessionLocker) acquire(ctx context.Context, userID string, date time.Time) (func(), error) {
	key := userID + "|" + domain.DateOf(date).Format("2006-01-02")

	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	l.mu.Unlock()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-timer.C:
		return nil, fmt.Errorf("acquiring session lock for %s: %w", key, ErrBusy)
	case <-ctx.Done():
		return nil, fmt.Errorf("acquiring session lock for %s: %w", key, ctx.Err())
	}
}
