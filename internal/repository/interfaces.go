package repository

import (
	"context"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
)

// SessionRepo stores one record per (user, calendar day). The lookup
// shapes are exactly what the session service needs: today's session, the
// most recent session on or before a date, and a date-range listing for
// statistics.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Session, error)
	LastForUserOnOrBefore(ctx context.Context, userID string, date time.Time) (*domain.Session, error)
	ListByUserDateRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.Session, error)
	ListLatestPerUser(ctx context.Context) ([]*domain.Session, error)
}

// EntryRepo stores the intervals within a session. ListBySession returns
// entries ordered by start then id, the total order every invariant check
// relies on.
type EntryRepo interface {
	Create(ctx context.Context, e *domain.SessionEntry) error
	GetByID(ctx context.Context, id string) (*domain.SessionEntry, error)
	Update(ctx context.Context, e *domain.SessionEntry) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.SessionEntry, error)
}
