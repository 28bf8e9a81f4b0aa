package domain

import "time"

// Session is one user's interval record for one calendar day.
// At most one Session exists per (user, date); it is created lazily by the
// first interval-opening operation and never deleted by the core.
type Session struct {
	ID        string
	UserID    string
	Date      time.Time // local calendar date, zero time-of-day
	CreatedAt time.Time
}

// SessionEntry is a typed, possibly-open time span within a Session.
// A nil End means the interval is still open.
type SessionEntry struct {
	ID        string
	SessionID string
	Start     time.Time
	End       *time.Time
	Type      EntryType
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the entry has no end time yet.
func (e *SessionEntry) Open() bool {
	return e.End == nil
}

// Duration returns the closed interval length, or zero for an open entry.
func (e *SessionEntry) Duration() time.Duration {
	if e.End == nil {
		return 0
	}
	return e.End.Sub(e.Start)
}

// CloseAt sets the end time. The caller is responsible for conflict
// checking; entries only reach storage through the session service.
func (e *SessionEntry) CloseAt(t time.Time) {
	end := t
	e.End = &end
}

// LastEntry returns the entry with the greatest start (ties broken by id),
// or nil for an empty slice.
func LastEntry(entries []*SessionEntry) *SessionEntry {
	var last *SessionEntry
	for _, e := range entries {
		if last == nil || e.Start.After(last.Start) || (e.Start.Equal(last.Start) && e.ID > last.ID) {
			last = e
		}
	}
	return last
}

// OpenEntry returns the open entry if exactly one exists, nil otherwise.
func OpenEntry(entries []*SessionEntry) *SessionEntry {
	for _, e := range entries {
		if e.Open() {
			return e
		}
	}
	return nil
}

// DateOf truncates a timestamp to its local calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two timestamps fall on the same local calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
