package cli

import (
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/toad-frogski/visits/internal/domain"
)

// resolveUser picks the acting user: explicit flag, then VISITS_USER,
// then the OS account name.
func resolveUser(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("VISITS_USER"); env != "" {
		return env, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolving current user: %w", err)
	}
	return u.Username, nil
}

// resolveTime parses a --time flag. Accepts "HH:MM" (today), a full
// "2006-01-02 15:04", or RFC3339; empty means now.
func resolveTime(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now(), nil
	}
	if t, err := time.ParseInLocation("15:04", flag, time.Local); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", flag, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, flag); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want HH:MM, \"YYYY-MM-DD HH:MM\" or RFC3339)", flag)
}

// resolveDate parses a YYYY-MM-DD flag; empty means today.
func resolveDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation("2006-01-02", flag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", flag)
	}
	return t, nil
}

// resolveEntryType validates an entry type flag, case-insensitively.
func resolveEntryType(flag string) (domain.EntryType, error) {
	upper := strings.ToUpper(flag)
	if !domain.ValidEntryTypes[upper] {
		return "", fmt.Errorf("unknown entry type %q (want SYSTEM, WORK, BREAK, LUNCH or PERSONAL)", flag)
	}
	return domain.EntryType(upper), nil
}

// entryTypeValue is a pflag.Value that validates entry types at parse time.
type entryTypeValue struct {
	typ domain.EntryType
}

var _ pflag.Value = (*entryTypeValue)(nil)

func newEntryTypeValue(def domain.EntryType) *entryTypeValue {
	return &entryTypeValue{typ: def}
}

func (v *entryTypeValue) String() string { return string(v.typ) }

func (v *entryTypeValue) Set(s string) error {
	typ, err := resolveEntryType(s)
	if err != nil {
		return err
	}
	v.typ = typ
	return nil
}

func (v *entryTypeValue) Type() string { return "entry-type" }
