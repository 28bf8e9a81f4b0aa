package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toad-frogski/visits/internal/domain"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func atp(hour, min int) *time.Time {
	t := at(hour, min)
	return &t
}

func entry(id string, start time.Time, end *time.Time, typ domain.EntryType) *domain.SessionEntry {
	return &domain.SessionEntry{ID: id, SessionID: "s1", Start: start, End: end, Type: typ}
}

func TestOverlaps_AdjacentIntervalsDoNotConflict(t *testing.T) {
	existing := []*domain.SessionEntry{
		entry("a", at(9, 0), atp(12, 0), domain.EntryWork),
	}

	// [12:00, 13:00) starts exactly where the existing entry ends.
	hit := Overlaps(existing, at(12, 0), atp(13, 0), "")
	assert.Nil(t, hit)

	// And the mirror case: candidate ends exactly at the existing start.
	hit = Overlaps(existing, at(8, 0), atp(9, 0), "")
	assert.Nil(t, hit)
}

func TestOverlaps_DetectsPartialAndContainedWindows(t *testing.T) {
	existing := []*domain.SessionEntry{
		entry("a", at(9, 0), atp(12, 0), domain.EntryWork),
	}

	tests := []struct {
		name  string
		start time.Time
		end   *time.Time
	}{
		{"overlap from the left", at(8, 0), atp(9, 30)},
		{"overlap from the right", at(11, 30), atp(13, 0)},
		{"contained", at(10, 0), atp(11, 0)},
		{"containing", at(8, 0), atp(13, 0)},
		{"identical", at(9, 0), atp(12, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Overlaps(existing, tt.start, tt.end, "")
			if assert.NotNil(t, hit) {
				assert.Equal(t, "a", hit.ID)
			}
		})
	}
}

func TestOverlaps_NilEndExtendsToInfinity(t *testing.T) {
	open := []*domain.SessionEntry{
		entry("a", at(9, 0), nil, domain.EntryWork),
	}

	// Any window starting after an open entry's start conflicts with it.
	assert.NotNil(t, Overlaps(open, at(15, 0), atp(16, 0), ""))

	// A window that ends before the open entry starts does not.
	assert.Nil(t, Overlaps(open, at(7, 0), atp(8, 0), ""))

	// An open candidate conflicts with any entry starting after it.
	closed := []*domain.SessionEntry{
		entry("b", at(14, 0), atp(15, 0), domain.EntryWork),
	}
	assert.NotNil(t, Overlaps(closed, at(10, 0), nil, ""))
}

func TestOverlaps_ExcludeIDSkipsTheEntryItself(t *testing.T) {
	existing := []*domain.SessionEntry{
		entry("a", at(9, 0), atp(12, 0), domain.EntryWork),
		entry("b", at(13, 0), atp(14, 0), domain.EntryLunch),
	}

	// Testing a widened version of "a" against its siblings: the entry
	// itself must not count as its own conflict.
	hit := Overlaps(existing, at(9, 0), atp(12, 30), "a")
	assert.Nil(t, hit)

	// But widening far enough to hit "b" still conflicts.
	hit = Overlaps(existing, at(9, 0), atp(13, 30), "a")
	if assert.NotNil(t, hit) {
		assert.Equal(t, "b", hit.ID)
	}
}

func TestOverlaps_ReportsEarliestConflictDeterministically(t *testing.T) {
	existing := []*domain.SessionEntry{
		entry("c", at(13, 0), atp(14, 0), domain.EntryWork),
		entry("a", at(9, 0), atp(12, 0), domain.EntryWork),
	}

	hit := Overlaps(existing, at(8, 0), atp(18, 0), "")
	if assert.NotNil(t, hit) {
		assert.Equal(t, "a", hit.ID, "conflict with the earliest start should be reported")
	}
}

func TestSortedByStart_TiesBreakOnID(t *testing.T) {
	entries := []*domain.SessionEntry{
		entry("b", at(9, 0), atp(9, 0), domain.EntrySystem),
		entry("a", at(9, 0), atp(9, 0), domain.EntrySystem),
	}

	ordered := SortedByStart(entries)
	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "b", ordered[1].ID)

	// Input order is preserved.
	assert.Equal(t, "b", entries[0].ID)
}
