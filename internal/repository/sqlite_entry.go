package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/toad-frogski/visits/internal/db"
	"github.com/toad-frogski/visits/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.SessionEntry) error {
	query := `INSERT INTO session_entries (id, session_id, start_at, end_at, type, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.SessionID,
		e.Start.Format(time.RFC3339),
		nullableTimeToString(e.End, time.RFC3339),
		string(e.Type),
		e.Comment,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.SessionEntry, error) {
	query := `SELECT id, session_id, start_at, end_at, type, comment, created_at, updated_at
		FROM session_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

// Update rewrites the mutable fields of an entry. The owning session
// reference is immutable after creation and deliberately not part of the
// statement.
func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.SessionEntry) error {
	query := `UPDATE session_entries
		SET start_at = ?, end_at = ?, type = ?, comment = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Start.Format(time.RFC3339),
		nullableTimeToString(e.End, time.RFC3339),
		string(e.Type),
		e.Comment,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session entry: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteEntryRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.SessionEntry, error) {
	query := `SELECT id, session_id, start_at, end_at, type, comment, created_at, updated_at
		FROM session_entries WHERE session_id = ? ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.SessionEntry, error) {
	var e domain.SessionEntry
	var startStr, createdAtStr, updatedAtStr string
	var endStr sql.NullString
	var typeStr string

	err := row.Scan(&e.ID, &e.SessionID, &startStr, &endStr, &typeStr, &e.Comment, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session entry: %w", err)
	}

	return r.populateEntry(&e, startStr, endStr, typeStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.SessionEntry, error) {
	var entries []*domain.SessionEntry
	for rows.Next() {
		var e domain.SessionEntry
		var startStr, createdAtStr, updatedAtStr string
		var endStr sql.NullString
		var typeStr string

		if err := rows.Scan(&e.ID, &e.SessionID, &startStr, &endStr, &typeStr, &e.Comment, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning session entry row: %w", err)
		}

		entry, parseErr := r.populateEntry(&e, startStr, endStr, typeStr, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) populateEntry(e *domain.SessionEntry, startStr string, endStr sql.NullString, typeStr, createdAtStr, updatedAtStr string) (*domain.SessionEntry, error) {
	var parseErr error
	e.Start, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_at: %w", parseErr)
	}
	e.End = parseNullableTime(endStr, time.RFC3339)
	e.Type = domain.EntryType(typeStr)
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return e, nil
}
