package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLocker_SameKeyTimesOutWithBusy(t *testing.T) {
	locker := newSessionLocker(50 * time.Millisecond)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	release, err := locker.acquire(ctx, "alice", date)
	require.NoError(t, err)
	defer release()

	_, err = locker.acquire(ctx, "alice", date)
	assert.ErrorIs(t, err, ErrBusy, "held key must surface as retryable, not block forever")
}

func TestSessionLocker_DifferentKeysDoNotContend(t *testing.T) {
	locker := newSessionLocker(50 * time.Millisecond)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	r1, err := locker.acquire(ctx, "alice", date)
	require.NoError(t, err)
	defer r1()

	// Same user, different day.
	r2, err := locker.acquire(ctx, "alice", date.AddDate(0, 0, 1))
	require.NoError(t, err)
	defer r2()

	// Different user, same day.
	r3, err := locker.acquire(ctx, "bob", date)
	require.NoError(t, err)
	defer r3()
}

func TestSessionLocker_ReleaseFreesTheKey(t *testing.T) {
	locker := newSessionLocker(50 * time.Millisecond)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	release, err := locker.acquire(ctx, "alice", date)
	require.NoError(t, err)
	release()

	release, err = locker.acquire(ctx, "alice", date)
	require.NoError(t, err)
	release()
}

func TestSessionLocker_CancelledContext(t *testing.T) {
	locker := newSessionLocker(time.Minute)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	release, err := locker.acquire(context.Background(), "alice", date)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.acquire(ctx, "alice", date)
	assert.ErrorIs(t, err, context.Canceled)
}
