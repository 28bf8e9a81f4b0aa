package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toad-frogski/visits/internal/domain"
)

func TestResolveTime(t *testing.T) {
	got, err := resolveTime("09:30")
	require.NoError(t, err)
	now := time.Now()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, time.Local), got)

	got, err = resolveTime("2026-03-10 14:15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 15, 0, 0, time.Local), got)

	_, err = resolveTime("half past nine")
	assert.ErrorContains(t, err, "unrecognized time")

	got, err = resolveTime("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, time.Second)
}

func TestResolveDate(t *testing.T) {
	got, err := resolveDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), got)

	_, err = resolveDate("10.03.2026")
	assert.ErrorContains(t, err, "unrecognized date")

	got, err = resolveDate("")
	require.NoError(t, err)
	assert.Equal(t, domain.DateOf(time.Now()), got)
}

func TestResolveEntryType(t *testing.T) {
	typ, err := resolveEntryType("lunch")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryLunch, typ)

	_, err = resolveEntryType("NAP")
	assert.ErrorContains(t, err, "unknown entry type")
}

func TestEntryTypeValue(t *testing.T) {
	v := newEntryTypeValue(domain.EntryWork)
	assert.Equal(t, "WORK", v.String())

	require.NoError(t, v.Set("break"))
	assert.Equal(t, domain.EntryBreak, v.typ)

	assert.Error(t, v.Set("NAP"))
	assert.Equal(t, domain.EntryBreak, v.typ)
}
