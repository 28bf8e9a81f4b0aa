package timeline

import (
	"time"

	"github.com/toad-frogski/visits/internal/domain"
)

// GraceCutoffHour is the local hour on the following day past which an
// entry left open is treated as an operator error rather than an ongoing
// shift.
const GraceCutoffHour = 8

// Resolve computes a session's current status from its entries and the
// current time. It only ever returns ACTIVE, INACTIVE or CHEATER; the
// leave-category statuses (HOLIDAY, VACATION, SICK) are assigned upstream
// and pass through the service untouched.
//
// CHEATER is a data-quality flag, not a judgment: it means the recorded
// intervals cannot represent a real continuous presence and need manual
// repair.
func Resolve(sessionDate time.Time, entries []*domain.SessionEntry, now time.Time) domain.SessionStatus {
	if len(entries) == 0 {
		return domain.StatusInactive
	}

	ordered := SortedByStart(entries)

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		// An open entry followed by another entry, or any overlap between
		// neighbors, is an inconsistency that must surface rather than be
		// silently repaired.
		if prev.End == nil || cur.Start.Before(*prev.End) {
			return domain.StatusCheater
		}
	}

	last := ordered[len(ordered)-1]
	if last.End == nil {
		if !domain.SameDate(now, sessionDate) && now.Hour() >= GraceCutoffHour {
			return domain.StatusCheater
		}
		if last.Type == domain.EntryWork {
			return domain.StatusActive
		}
		return domain.StatusInactive
	}

	return domain.StatusInactive
}
