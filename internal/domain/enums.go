package domain

// EntryType classifies how an interval of the work day was spent.
type EntryType string

const (
	EntrySystem   EntryType = "SYSTEM"
	EntryWork     EntryType = "WORK"
	EntryBreak    EntryType = "BREAK"
	EntryLunch    EntryType = "LUNCH"
	EntryPersonal EntryType = "PERSONAL"
)

// ValidEntryTypes is the canonical set of accepted entry type strings.
var ValidEntryTypes = map[string]bool{
	"SYSTEM": true, "WORK": true, "BREAK": true,
	"LUNCH": true, "PERSONAL": true,
}

// SessionStatus is the derived state of a user's day.
type SessionStatus string

const (
	StatusActive   SessionStatus = "ACTIVE"
	StatusInactive SessionStatus = "INACTIVE"
	StatusCheater  SessionStatus = "CHEATER"
	StatusHoliday  SessionStatus = "HOLIDAY"
	StatusVacation SessionStatus = "VACATION"
	StatusSick     SessionStatus = "SICK"
)
