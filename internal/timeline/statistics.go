package timeline

import (
	"github.com/toad-frogski/visits/internal/domain"
)

// DayStatistics sums closed-interval durations for one day's entries.
// PERSONAL and SYSTEM intervals are tracked on the raw entries but not
// bucketed here; callers that need them read the entries directly.
type DayStatistics struct {
	Work  Seconds `json:"work_time"`
	Break Seconds `json:"break_time"`
	Lunch Seconds `json:"lunch_time"`
}

// Seconds is a duration serialized as fractional seconds.
type Seconds float64

// Aggregate buckets closed entry durations by type. Open entries
// contribute nothing — they are still in progress.
func Aggregate(entries []*domain.SessionEntry) DayStatistics {
	var stats DayStatistics
	for _, e := range entries {
		if e.End == nil {
			continue
		}
		delta := Seconds(e.End.Sub(e.Start).Seconds())
		switch e.Type {
		case domain.EntryWork:
			stats.Work += delta
		case domain.EntryBreak:
			stats.Break += delta
		case domain.EntryLunch:
			stats.Lunch += delta
		}
	}
	return stats
}
