package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/toad-frogski/visits/internal/db"
	"github.com/toad-frogski/visits/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database. It
// accepts a db.DBTX so the session service can construct tx-scoped
// instances inside a unit of work.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, user_id, date, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Date.Format(dateLayout),
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT id, user_id, date, created_at FROM sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Session, error) {
	query := `SELECT id, user_id, date, created_at FROM sessions WHERE user_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, query, userID, date.Format(dateLayout))
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) LastForUserOnOrBefore(ctx context.Context, userID string, date time.Time) (*domain.Session, error) {
	query := `SELECT id, user_id, date, created_at FROM sessions
		WHERE user_id = ? AND date <= ?
		ORDER BY date DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID, date.Format(dateLayout))
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) ListByUserDateRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.Session, error) {
	query := `SELECT id, user_id, date, created_at FROM sessions
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing sessions by date range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListLatestPerUser(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT s.id, s.user_id, s.date, s.created_at FROM sessions s
		JOIN (SELECT user_id, MAX(date) AS max_date FROM sessions GROUP BY user_id) latest
		  ON s.user_id = latest.user_id AND s.date = latest.max_date
		ORDER BY s.user_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing latest sessions per user: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var dateStr, createdAtStr string

	err := row.Scan(&s.ID, &s.UserID, &dateStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	return r.populateSession(&s, dateStr, createdAtStr)
}

func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var dateStr, createdAtStr string

		if err := rows.Scan(&s.ID, &s.UserID, &dateStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, dateStr, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) populateSession(s *domain.Session, dateStr, createdAtStr string) (*domain.Session, error) {
	var parseErr error
	s.Date, parseErr = time.ParseInLocation(dateLayout, dateStr, time.Local)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date: %w", parseErr)
	}
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return s, nil
}
