package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toad-frogski/visits/internal/db"
	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/repository"
)

// newConcurrentService wires a service over a file-backed SQLite database.
// Unlike :memory:, a file-backed DB shares state across all connections in
// the pool, which is required to exercise real concurrent access.
func newConcurrentService(t *testing.T) (repository.EntryRepo, SessionService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	sessions := repository.NewSQLiteSessionRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	return entries, NewSessionService(sessions, entries, uow, NoopNotifier{})
}

// TestConcurrentEnter_ExactlyOneWins drives N simultaneous enters for the
// same user with no prior entries. The per-(user, date) lock serializes
// them: exactly one creates the open entry, the rest observe it and fail
// with ErrAlreadyOpen (or a retryable ErrBusy under contention).
func TestConcurrentEnter_ExactlyOneWins(t *testing.T) {
	entries, svc := newConcurrentService(t)
	ctx := context.Background()

	const workers = 8
	at := todayAt(9, 0)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	sessionIDs := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := svc.Enter(ctx, "alice", domain.EntryWork, at)
			results <- err
			if err == nil {
				sessionIDs <- session.ID
			}
		}()
	}
	wg.Wait()
	close(results)
	close(sessionIDs)

	var wins, rejects int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyOpen) || errors.Is(err, ErrBusy):
			rejects++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one enter may succeed")
	assert.Equal(t, workers-1, rejects)

	var winnerID string
	for id := range sessionIDs {
		winnerID = id
	}
	listed, err := entries.ListBySession(ctx, winnerID)
	require.NoError(t, err)
	assert.Len(t, listed, 1, "only one open entry may exist")
}

// TestConcurrentMutations_DifferentUsersAreIndependent verifies that
// operations under different (user, date) keys proceed in parallel
// without interfering.
func TestConcurrentMutations_DifferentUsersAreIndependent(t *testing.T) {
	_, svc := newConcurrentService(t)
	ctx := context.Background()

	users := []string{"alice", "bob", "carol", "dave"}

	var wg sync.WaitGroup
	errs := make(chan error, len(users)*2)
	for _, user := range users {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			if _, err := svc.Enter(ctx, user, domain.EntryWork, todayAt(9, 0)); err != nil {
				errs <- err
				return
			}
			errs <- svc.Exit(ctx, user, todayAt(17, 0), "")
		}(user)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	rows, err := svc.UsersToday(ctx, todayAt(18, 0))
	require.NoError(t, err)
	assert.Len(t, rows, len(users))
}
