package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/toad-frogski/visits/internal/domain"
)

// Entry options
type EntryOption func(*domain.SessionEntry)

func WithEntryType(t domain.EntryType) EntryOption {
	return func(e *domain.SessionEntry) {
		e.Type = t
	}
}

func WithComment(c string) EntryOption {
	return func(e *domain.SessionEntry) {
		e.Comment = c
	}
}

func WithEnd(end time.Time) EntryOption {
	return func(e *domain.SessionEntry) {
		e.End = &end
	}
}

// NewTestSession builds a Session for the given user and local date.
func NewTestSession(userID string, date time.Time) *domain.Session {
	return &domain.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      domain.DateOf(date),
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestEntry builds an open WORK entry starting at the given time.
// Options close it, retype it or attach a comment.
func NewTestEntry(sessionID string, start time.Time, opts ...EntryOption) *domain.SessionEntry {
	now := time.Now().UTC()
	e := &domain.SessionEntry{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Start:     start,
		Type:      domain.EntryWork,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
