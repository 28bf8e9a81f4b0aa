package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/toad-frogski/visits/internal/cli/formatter"
	"github.com/toad-frogski/visits/internal/domain"
)

// visitsHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func visitsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.ParseInLocation("15:04", s, time.Local); err != nil {
		return fmt.Errorf("want HH:MM")
	}
	return nil
}

func validateRequiredClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return validateClock(s)
}

// clockInput returns a huh.Input for a wall-clock time field.
func clockInput(title string, required bool, value *string) *huh.Input {
	validate := validateClock
	if required {
		validate = validateRequiredClock
	}
	return huh.NewInput().
		Title(title).
		Placeholder("13:30").
		Value(value).
		Validate(validate)
}

// entryTypeSelect returns a huh.Select over the entry types.
func entryTypeSelect(title string, value *string) *huh.Select[string] {
	options := []huh.Option[string]{
		huh.NewOption("Work", string(domain.EntryWork)),
		huh.NewOption("Break", string(domain.EntryBreak)),
		huh.NewOption("Lunch", string(domain.EntryLunch)),
		huh.NewOption("Personal", string(domain.EntryPersonal)),
	}
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(value)
}

// insertEntryForm collects the fields for a backfilled interval.
func insertEntryForm(start, end, typ, comment *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			clockInput("Start (HH:MM)", true, start),
			clockInput("End (HH:MM, blank to leave open)", false, end),
			entryTypeSelect("Type", typ),
			huh.NewInput().Title("Comment").Value(comment),
		),
	).WithTheme(visitsHuhTheme()).WithShowHelp(false)
}

// repairEndForm collects the corrected end time for a broken entry.
func repairEndForm(end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			clockInput("Actual end time (HH:MM)", true, end),
		),
	).WithTheme(visitsHuhTheme()).WithShowHelp(false)
}
