package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/toad-frogski/visits/internal/db"
	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/repository"
	"github.com/toad-frogski/visits/internal/timeline"
)

type sessionService struct {
	sessions repository.SessionRepo
	entries  repository.EntryRepo
	uow      db.UnitOfWork
	locker   *sessionLocker
	notifier Notifier
}

// NewSessionService wires the session state machine over the given
// repositories and unit of work. The notifier receives post-commit status
// events; pass NoopNotifier when nothing listens.
func NewSessionService(sessions repository.SessionRepo, entries repository.EntryRepo, uow db.UnitOfWork, notifier Notifier) SessionService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &sessionService{
		sessions: sessions,
		entries:  entries,
		uow:      uow,
		locker:   newSessionLocker(lockTimeoutFromEnv()),
		notifier: notifier,
	}
}

func (s *sessionService) Enter(ctx context.Context, userID string, typ domain.EntryType, at time.Time) (*domain.Session, error) {
	release, err := s.locker.acquire(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	defer release()

	var session *domain.Session
	var finalEntries []*domain.SessionEntry

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)

		var err error
		session, err = s.loadOrCreateSession(ctx, txSessions, userID, at)
		if err != nil {
			return err
		}

		entries, err := txEntries.ListBySession(ctx, session.ID)
		if err != nil {
			return err
		}

		last := domain.LastEntry(entries)
		if last != nil && last.Open() {
			return fmt.Errorf("enter at %s: %w", at.Format(time.RFC3339), ErrAlreadyOpen)
		}

		if conflict := timeline.Overlaps(entries, at, nil, ""); conflict != nil {
			return overlapErr(conflict)
		}

		// A closed last entry ending before the new start leaves a silent
		// hole in the day's timeline; bridge it with a BREAK so aggregates
		// see the full span.
		if last != nil && last.End != nil && last.End.Before(at) {
			gap := s.newEntry(session.ID, *last.End, domain.EntryBreak, "")
			gap.CloseAt(at)
			if err := txEntries.Create(ctx, gap); err != nil {
				return err
			}
			entries = append(entries, gap)
		}

		opened := s.newEntry(session.ID, at, typ, "")
		if err := txEntries.Create(ctx, opened); err != nil {
			return err
		}
		finalEntries = append(entries, opened)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchStatus(ctx, session, finalEntries, "")
	return session, nil
}

func (s *sessionService) Exit(ctx context.Context, userID string, at time.Time, comment string) error {
	view, err := s.CurrentSession(ctx, userID)
	if err != nil {
		return err
	}
	if view == nil {
		return fmt.Errorf("exit for %s: %w", userID, ErrNoSession)
	}

	release, err := s.locker.acquire(ctx, userID, view.Session.Date)
	if err != nil {
		return err
	}
	defer release()

	var finalEntries []*domain.SessionEntry

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		entries, err := txEntries.ListBySession(ctx, view.Session.ID)
		if err != nil {
			return err
		}

		last := domain.LastEntry(entries)
		if last == nil || !last.Open() {
			return fmt.Errorf("exit at %s: %w", at.Format(time.RFC3339), ErrNoOpenEntry)
		}
		if at.Before(last.Start) {
			return overlapErr(last)
		}

		last.CloseAt(at)
		last.Comment = comment
		last.UpdatedAt = time.Now().UTC()
		if err := txEntries.Update(ctx, last); err != nil {
			return err
		}
		finalEntries = entries
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatchStatus(ctx, view.Session, finalEntries, comment)
	return nil
}

func (s *sessionService) Leave(ctx context.Context, userID string, typ domain.EntryType, at time.Time, comment string) error {
	view, err := s.CurrentSession(ctx, userID)
	if err != nil {
		return err
	}
	if view == nil {
		return fmt.Errorf("leave for %s: %w", userID, ErrNoSession)
	}

	release, err := s.locker.acquire(ctx, userID, view.Session.Date)
	if err != nil {
		return err
	}
	defer release()

	var finalEntries []*domain.SessionEntry

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		entries, err := txEntries.ListBySession(ctx, view.Session.ID)
		if err != nil {
			return err
		}

		last := domain.LastEntry(entries)
		if last == nil || !last.Open() {
			return fmt.Errorf("leave at %s: %w", at.Format(time.RFC3339), ErrNoOpenEntry)
		}
		if at.Before(last.Start) {
			return overlapErr(last)
		}

		last.CloseAt(at)
		last.Comment = comment
		last.UpdatedAt = time.Now().UTC()
		if err := txEntries.Update(ctx, last); err != nil {
			return err
		}

		opened := s.newEntry(view.Session.ID, at, typ, "")
		if err := txEntries.Create(ctx, opened); err != nil {
			return err
		}
		finalEntries = append(entries, opened)
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatchStatus(ctx, view.Session, finalEntries, comment)
	return nil
}

func (s *sessionService) InsertEntry(ctx context.Context, sessionID string, start time.Time, end *time.Time, typ domain.EntryType, comment string) (*domain.SessionEntry, error) {
	if end != nil && end.Before(start) {
		return nil, fmt.Errorf("entry end %s precedes start %s: %w",
			end.Format(time.RFC3339), start.Format(time.RFC3339), ErrOverlapConflict)
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.acquire(ctx, session.UserID, session.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	var inserted *domain.SessionEntry
	var finalEntries []*domain.SessionEntry

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		entries, err := txEntries.ListBySession(ctx, session.ID)
		if err != nil {
			return err
		}

		if conflict := timeline.Overlaps(entries, start, end, ""); conflict != nil {
			return overlapErr(conflict)
		}
		if end == nil {
			if open := domain.OpenEntry(entries); open != nil {
				return fmt.Errorf("inserting open entry: %w", ErrAlreadyOpen)
			}
		}

		inserted = s.newEntry(session.ID, start, typ, comment)
		inserted.End = end
		if err := txEntries.Create(ctx, inserted); err != nil {
			return err
		}
		finalEntries = append(entries, inserted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchStatus(ctx, session, finalEntries, comment)
	return inserted, nil
}

// RepairEntry is the only conflict-repair path: every other operation
// treats a detected overlap as a hard stop.
func (s *sessionService) RepairEntry(ctx context.Context, entryID string, newEnd time.Time) error {
	target, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	session, err := s.sessions.GetByID(ctx, target.SessionID)
	if err != nil {
		return err
	}

	if newEnd.Before(target.Start) {
		return fmt.Errorf("repair end %s precedes entry start %s: %w",
			newEnd.Format(time.RFC3339), target.Start.Format(time.RFC3339), ErrOverlapConflict)
	}

	release, err := s.locker.acquire(ctx, session.UserID, session.Date)
	if err != nil {
		return err
	}
	defer release()

	var finalEntries []*domain.SessionEntry

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		entries, err := txEntries.ListBySession(ctx, session.ID)
		if err != nil {
			return err
		}

		target, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		last := domain.LastEntry(entries)

		// The corrected window must clear every entry other than the
		// target itself and the day's last entry, which is reconciled
		// separately below.
		others := make([]*domain.SessionEntry, 0, len(entries))
		for _, e := range entries {
			if e.ID == target.ID || (last != nil && e.ID == last.ID) {
				continue
			}
			others = append(others, e)
		}
		if conflict := timeline.Overlaps(others, target.Start, &newEnd, ""); conflict != nil {
			return overlapErr(conflict)
		}

		now := time.Now().UTC()

		if last != nil && last.ID == target.ID {
			target.CloseAt(newEnd)
			target.UpdatedAt = now
			if err := txEntries.Update(ctx, target); err != nil {
				return err
			}
			finalEntries = replaceEntry(entries, target)
			return nil
		}

		// The last entry sits after the target. Closing the target at
		// newEnd may leave a gap up to the last entry's start; fill it
		// with a synthetic BREAK. A last entry starting inside the
		// corrected window means the repair would still be inconsistent.
		if last != nil && last.Start.Before(newEnd) {
			return overlapErr(last)
		}

		target.CloseAt(newEnd)
		target.UpdatedAt = now
		if err := txEntries.Update(ctx, target); err != nil {
			return err
		}
		finalEntries = replaceEntry(entries, target)

		if last != nil && newEnd.Before(last.Start) {
			gap := s.newEntry(session.ID, newEnd, domain.EntryBreak, "")
			gap.CloseAt(last.Start)
			if err := txEntries.Create(ctx, gap); err != nil {
				return err
			}
			finalEntries = append(finalEntries, gap)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatchStatus(ctx, session, finalEntries, "")
	return nil
}

func (s *sessionService) CurrentSession(ctx context.Context, userID string) (*SessionView, error) {
	today := domain.DateOf(time.Now())

	session, err := s.sessions.LastForUserOnOrBefore(ctx, userID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entries, err := s.entries.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	if session.Date.Equal(today) {
		return &SessionView{Session: session, Entries: entries}, nil
	}

	// A prior day only counts while an entry is still open: a forgotten
	// exit stays visible until repaired instead of silently disappearing.
	if domain.OpenEntry(entries) != nil {
		return &SessionView{Session: session, Entries: entries}, nil
	}
	return nil, nil
}

func (s *sessionService) StatusOf(view *SessionView, now time.Time) domain.SessionStatus {
	if view == nil {
		return domain.StatusInactive
	}
	return timeline.Resolve(view.Session.Date, view.Entries, now)
}

func (s *sessionService) UsersToday(ctx context.Context, now time.Time) ([]UserToday, error) {
	latest, err := s.sessions.ListLatestPerUser(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(now)
	result := make([]UserToday, 0, len(latest))
	for _, session := range latest {
		entries, err := s.entries.ListBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}

		row := UserToday{UserID: session.UserID, Status: domain.StatusInactive}
		if session.Date.Equal(today) || domain.OpenEntry(entries) != nil {
			row.Session = session
			row.Status = timeline.Resolve(session.Date, entries, now)
			if last := domain.LastEntry(entries); last != nil {
				row.Comment = last.Comment
			}
		}
		result = append(result, row)
	}
	return result, nil
}

// loadOrCreateSession returns the user's session for the date of `at`,
// creating it when this is the day's first interval-opening operation.
func (s *sessionService) loadOrCreateSession(ctx context.Context, txSessions repository.SessionRepo, userID string, at time.Time) (*domain.Session, error) {
	date := domain.DateOf(at)
	session, err := txSessions.GetByUserAndDate(ctx, userID, date)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	session = &domain.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	if err := txSessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) newEntry(sessionID string, start time.Time, typ domain.EntryType, comment string) *domain.SessionEntry {
	now := time.Now().UTC()
	return &domain.SessionEntry{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Start:     start,
		Type:      typ,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// dispatchStatus fires the post-commit status event. Best-effort: runs on
// its own goroutine with a detached context so listeners can never block
// or fail the mutation that produced the event.
func (s *sessionService) dispatchStatus(ctx context.Context, session *domain.Session, entries []*domain.SessionEntry, comment string) {
	now := time.Now()
	ev := StatusEvent{
		SessionID: session.ID,
		UserID:    session.UserID,
		Status:    timeline.Resolve(session.Date, entries, now),
		Comment:   comment,
		At:        now,
	}
	go s.notifier.NotifyStatusChange(context.WithoutCancel(ctx), ev)
}

func replaceEntry(entries []*domain.SessionEntry, updated *domain.SessionEntry) []*domain.SessionEntry {
	out := make([]*domain.SessionEntry, len(entries))
	for i, e := range entries {
		if e.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = e
		}
	}
	return out
}
