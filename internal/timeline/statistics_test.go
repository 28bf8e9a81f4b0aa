package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toad-frogski/visits/internal/domain"
)

func TestAggregate_BucketsClosedEntriesByType(t *testing.T) {
	entries := []*domain.SessionEntry{
		entry("a", at(9, 0), atp(12, 0), domain.EntryWork),
		entry("b", at(12, 0), atp(12, 45), domain.EntryLunch),
		entry("c", at(12, 45), atp(17, 0), domain.EntryWork),
		entry("d", at(17, 0), atp(17, 15), domain.EntryBreak),
	}

	stats := Aggregate(entries)
	assert.Equal(t, Seconds((3*60+4*60+15)*60), stats.Work)
	assert.Equal(t, Seconds(45*60), stats.Lunch)
	assert.Equal(t, Seconds(15*60), stats.Break)
}

func TestAggregate_OpenEntriesContributeNothing(t *testing.T) {
	entries := []*domain.SessionEntry{
		entry("a", at(9, 0), atp(10, 0), domain.EntryWork),
		entry("b", at(10, 0), nil, domain.EntryWork),
	}

	stats := Aggregate(entries)
	assert.Equal(t, Seconds(3600), stats.Work)
}

func TestAggregate_PersonalAndSystemAreNotBucketed(t *testing.T) {
	entries := []*domain.SessionEntry{
		entry("a", at(9, 0), atp(10, 0), domain.EntryPersonal),
		entry("b", at(10, 0), atp(11, 0), domain.EntrySystem),
	}

	stats := Aggregate(entries)
	assert.Zero(t, stats.Work)
	assert.Zero(t, stats.Break)
	assert.Zero(t, stats.Lunch)
}

func TestAggregate_EmptyDay(t *testing.T) {
	assert.Zero(t, Aggregate(nil))
}
