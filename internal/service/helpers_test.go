package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/toad-frogski/visits/internal/repository"
	"github.com/toad-frogski/visits/internal/testutil"
)

// setupService wires a SessionService over a fresh in-memory database and
// returns the raw repos for direct state inspection.
func setupService(t *testing.T) (*sql.DB, repository.SessionRepo, repository.EntryRepo, SessionService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	sessions := repository.NewSQLiteSessionRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	uow := testutil.NewTestUoW(database)
	svc := NewSessionService(sessions, entries, uow, NoopNotifier{})
	return database, sessions, entries, svc
}

// todayAt anchors test times on the current local date so the
// current-session rules (which compare against time.Now) hold.
func todayAt(hour, min int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.Local)
}
