package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/repository"
	"github.com/toad-frogski/visits/internal/testutil"
)

// seedCheaterDay builds the canonical inconsistent day: an entry left
// open in the morning, followed by a later open entry. Returns the stale
// entry and the current last entry.
func seedCheaterDay(t *testing.T, sessions repository.SessionRepo, entries repository.EntryRepo, lastStart time.Time) (*domain.Session, *domain.SessionEntry, *domain.SessionEntry) {
	t.Helper()
	ctx := context.Background()

	session := testutil.NewTestSession("alice", time.Now())
	require.NoError(t, sessions.Create(ctx, session))

	stale := testutil.NewTestEntry(session.ID, todayAt(9, 0))
	require.NoError(t, entries.Create(ctx, stale))

	last := testutil.NewTestEntry(session.ID, lastStart)
	require.NoError(t, entries.Create(ctx, last))

	return session, stale, last
}

func TestRepairEntry_ClosesTheLastEntryDirectly(t *testing.T) {
	_, sessions, entries, svc := setupService(t)
	ctx := context.Background()

	session := testutil.NewTestSession("alice", time.Now())
	require.NoError(t, sessions.Create(ctx, session))
	open := testutil.NewTestEntry(session.ID, todayAt(9, 0))
	require.NoError(t, entries.Create(ctx, open))

	require.NoError(t, svc.RepairEntry(ctx, open.ID, todayAt(17, 0)))

	got, err := entries.GetByID(ctx, open.ID)
	require.NoError(t, err)
	require.NotNil(t, got.End)
	assert.True(t, got.End.Equal(todayAt(17, 0)))
}

func TestRepairEntry_FillsGapToTheLastEntryWithBreak(t *testing.T) {
	_, sessions, entries, svc := setupService(t)
	ctx := context.Background()

	session, stale, _ := seedCheaterDay(t, sessions, entries, todayAt(14, 0))

	require.NoError(t, svc.RepairEntry(ctx, stale.ID, todayAt(12, 0)))

	listed, err := entries.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	repaired, err := entries.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.NotNil(t, repaired.End)
	assert.True(t, repaired.End.Equal(todayAt(12, 0)))

	gap := listed[1]
	assert.Equal(t, domain.EntryBreak, gap.Type)
	assert.True(t, gap.Start.Equal(todayAt(12, 0)))
	require.NotNil(t, gap.End)
	assert.True(t, gap.End.Equal(todayAt(14, 0)), "break must reach the last entry's start")

	// The day is consistent again.
	view, err := svc.CurrentSession(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, domain.StatusActive, svc.StatusOf(view, todayAt(15, 0)))
}

func TestRepairEntry_AdjacentToLastNeedsNoBreak(t *testing.T) {
	_, sessions, entries, svc := setupService(t)
	ctx := context.Background()

	session, stale, _ := seedCheaterDay(t, sessions, entries, todayAt(12, 0))

	require.NoError(t, svc.RepairEntry(ctx, stale.ID, todayAt(12, 0)))

	listed, err := entries.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2, "no synthetic break for a zero gap")
}

func TestRepairEntry_EndInsideLastEntryConflicts(t *testing.T) {
	_, sessions, entries, svc := setupService(t)
	ctx := context.Background()

	session, stale, _ := seedCheaterDay(t, sessions, entries, todayAt(11, 0))

	err := svc.RepairEntry(ctx, stale.ID, todayAt(12, 0))
	assert.ErrorIs(t, err, ErrOverlapConflict)

	// State untouched.
	got, err := entries.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.End)
	listed, err := entries.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestRepairEntry_EndOverlappingMiddleEntryConflicts(t *testing.T) {
	_, sessions, entries, svc := setupService(t)
	ctx := context.Background()

	session := testutil.NewTestSession("alice", time.Now())
	require.NoError(t, sessions.Create(ctx, session))

	stale := testutil.NewTestEntry(session.ID, todayAt(9, 0))
	require.NoError(t, entries.Create(ctx, stale))
	middle := testutil.NewTestEntry(session.ID, todayAt(11, 0), testutil.WithEnd(todayAt(12, 0)))
	require.NoError(t, entries.Create(ctx, middle))
	last := testutil.NewTestEntry(session.ID, todayAt(14, 0))
	require.NoError(t, entries.Create(ctx, last))

	// Closing the stale entry at 11:30 would still overlap the middle one.
	err := svc.RepairEntry(ctx, stale.ID, todayAt(11, 30))
	assert.ErrorIs(t, err, ErrOverlapConflict)

	got, err := entries.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.End, "failed repair must leave the entry open")
}

func TestRepairEntry_EndBeforeStartRejected(t *testing.T) {
	_, sessions, entries, svc := setupService(t)
	ctx := context.Background()

	session := testutil.NewTestSession("alice", time.Now())
	require.NoError(t, sessions.Create(ctx, session))
	open := testutil.NewTestEntry(session.ID, todayAt(9, 0))
	require.NoError(t, entries.Create(ctx, open))

	err := svc.RepairEntry(ctx, open.ID, todayAt(8, 0))
	assert.ErrorIs(t, err, ErrOverlapConflict)
}

func TestRepairEntry_UnknownEntry(t *testing.T) {
	_, _, _, svc := setupService(t)

	err := svc.RepairEntry(context.Background(), "missing", todayAt(12, 0))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepairEntry_CloseAndGapFillAreAtomic(t *testing.T) {
	database, sessions, entries, _ := setupService(t)
	ctx := context.Background()

	session, stale, _ := seedCheaterDay(t, sessions, entries, todayAt(14, 0))

	// Fail the second write in the transaction: the close succeeds, the
	// synthetic break insert errors, and the whole repair must roll back.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")}
	svc := NewSessionService(sessions, entries, uow, NoopNotifier{})

	err := svc.RepairEntry(ctx, stale.ID, todayAt(12, 0))
	require.Error(t, err)

	got, err := entries.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.End, "close must not survive a failed gap fill")

	listed, err := entries.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2, "no partial write may be observable")
}
