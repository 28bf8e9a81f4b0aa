package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
)

var (
	// ErrNoSession indicates the user has no session that an exit or
	// leave could apply to.
	ErrNoSession = errors.New("no session for user")

	// ErrAlreadyOpen indicates an enter while an interval is still open.
	ErrAlreadyOpen = errors.New("an open entry already exists")

	// ErrNoOpenEntry indicates an exit or leave with nothing to close.
	ErrNoOpenEntry = errors.New("no open entry to close")

	// ErrOverlapConflict indicates the requested interval would share an
	// instant with an existing one. Match with errors.Is; the concrete
	// error is an *OverlapError carrying the conflicting window.
	ErrOverlapConflict = errors.New("interval overlaps an existing entry")

	// ErrBusy indicates the per-(user, date) mutation lock could not be
	// acquired in time. Retryable.
	ErrBusy = errors.New("session is busy, retry")
)

// OverlapError reports which existing entry a candidate window collides
// with, so a client can correct its input and retry.
type OverlapError struct {
	EntryID string
	Start   time.Time
	End     *time.Time
}

func (e *OverlapError) Error() string {
	end := "open"
	if e.End != nil {
		end = e.End.Format(time.RFC3339)
	}
	return fmt.Sprintf("interval overlaps entry %s [%s, %s)", e.EntryID, e.Start.Format(time.RFC3339), end)
}

func (e *OverlapError) Unwrap() error { return ErrOverlapConflict }

// overlapErr builds an *OverlapError from the conflicting entry.
func overlapErr(conflict *domain.SessionEntry) error {
	return &OverlapError{EntryID: conflict.ID, Start: conflict.Start, End: conflict.End}
}
