package db

import (
	"database/sql"
	"fmt"
)

// migrations are executed in order on every open. Statements are written
// to be re-runnable (CREATE ... IF NOT EXISTS).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		date       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(user_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_date ON sessions(user_id, date)`,
	`CREATE TABLE IF NOT EXISTS session_entries (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		start_at   TEXT NOT NULL,
		end_at     TEXT,
		type       TEXT NOT NULL
		           CHECK(type IN ('SYSTEM','WORK','BREAK','LUNCH','PERSONAL')),
		comment    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_entries_session_start ON session_entries(session_id, start_at)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
