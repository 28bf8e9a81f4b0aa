// Package timeline holds the pure interval logic of the visits core:
// overlap detection, status resolution and duration aggregation. Nothing
// in this package touches storage or clocks beyond the arguments it is
// handed, which keeps every rule table-testable.
package timeline

import (
	"sort"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
)

// Overlaps reports the first existing entry whose interval shares any
// instant with the candidate window [start, end). Intervals are half-open,
// so adjacency (one ending exactly where the next starts) is not a
// conflict. A nil end — on the candidate or on an existing entry — is
// treated as extending to infinity. Entries whose id equals excludeID are
// skipped, which lets a caller test a modified version of an entry against
// its siblings.
//
// Returns nil when no conflict exists. Candidates are examined in a total
// order (start, then id) so the reported conflict is deterministic.
func Overlaps(entries []*domain.SessionEntry, start time.Time, end *time.Time, excludeID string) *domain.SessionEntry {
	ordered := SortedByStart(entries)
	for _, e := range ordered {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if intervalsOverlap(e.Start, e.End, start, end) {
			return e
		}
	}
	return nil
}

// intervalsOverlap implements the half-open rule: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 and s2 < e1, with a nil end standing in for +inf.
func intervalsOverlap(s1 time.Time, e1 *time.Time, s2 time.Time, e2 *time.Time) bool {
	startsBeforeEnd := func(s time.Time, e *time.Time) bool {
		return e == nil || s.Before(*e)
	}
	return startsBeforeEnd(s1, e2) && startsBeforeEnd(s2, e1)
}

// SortedByStart returns a copy of entries ordered by start time, ties
// broken by id. The input slice is left untouched.
func SortedByStart(entries []*domain.SessionEntry) []*domain.SessionEntry {
	ordered := make([]*domain.SessionEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start.Equal(ordered[j].Start) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Start.Before(ordered[j].Start)
	})
	return ordered
}
