package service

import (
	"context"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/plugin"
	"github.com/toad-frogski/visits/internal/timeline"
)

// SessionView is a session together with its start-ordered entries.
type SessionView struct {
	Session *domain.Session
	Entries []*domain.SessionEntry
}

// UserToday is one user's row in the who-is-in view.
type UserToday struct {
	UserID  string
	Session *domain.Session
	Status  domain.SessionStatus
	Comment string
}

// SessionService owns every mutation of a user's day and the read-side
// views derived from it. Mutations are serialized per (user, date) and
// each one is atomic: either the full entry mutation commits or nothing
// does.
type SessionService interface {
	// Enter opens a new interval of the given type, creating the day's
	// session when absent and bridging a gap after the previous closed
	// entry with a synthetic BREAK. Fails with ErrAlreadyOpen when an
	// interval is still open.
	Enter(ctx context.Context, userID string, typ domain.EntryType, at time.Time) (*domain.Session, error)

	// Exit closes the current open interval at the given time.
	Exit(ctx context.Context, userID string, at time.Time, comment string) error

	// Leave closes the current open interval and immediately opens a new
	// one of the given type at the same instant. Coming back from a leave
	// is the same primitive with a different type.
	Leave(ctx context.Context, userID string, typ domain.EntryType, at time.Time, comment string) error

	// InsertEntry backfills a historical interval after checking it
	// against every existing entry of the session.
	InsertEntry(ctx context.Context, sessionID string, start time.Time, end *time.Time, typ domain.EntryType, comment string) (*domain.SessionEntry, error)

	// RepairEntry closes a flagged-inconsistent entry at newEnd and, when
	// the day's open entry starts later, fills the resulting gap with a
	// synthetic BREAK. The close and the gap fill commit together or not
	// at all.
	RepairEntry(ctx context.Context, entryID string, newEnd time.Time) error

	// CurrentSession resolves the user's current session: today's, or the
	// most recent prior day's if it still has an open entry. Returns
	// (nil, nil) when no session qualifies.
	CurrentSession(ctx context.Context, userID string) (*SessionView, error)

	// StatusOf computes the session status for a view; a nil view is
	// INACTIVE.
	StatusOf(view *SessionView, now time.Time) domain.SessionStatus

	// UsersToday lists every known user with their current session,
	// status and last comment.
	UsersToday(ctx context.Context, now time.Time) ([]UserToday, error)
}

// DayReport is one date's slice of a range-statistics response.
// Statistics is nil for dates without a session; Extras is never nil.
type DayReport struct {
	Date       time.Time
	Session    *domain.Session
	Statistics *timeline.DayStatistics
	Extras     []plugin.Extra
}

// StatisticsService computes per-day duration aggregates over a date
// range, merging in plugin-supplied extras.
type StatisticsService interface {
	RangeStatistics(ctx context.Context, userID string, start, end time.Time) ([]DayReport, error)
}
