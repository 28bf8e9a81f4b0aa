package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/toad-frogski/visits/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the lipgloss style corresponding to a session status.
func StatusColor(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.StatusActive:
		return StyleGreen
	case domain.StatusCheater:
		return StyleRed
	case domain.StatusHoliday, domain.StatusVacation:
		return StyleBlue
	case domain.StatusSick:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● ACTIVE".
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.StatusActive:
		return StyleGreen.Render("● ACTIVE")
	case domain.StatusCheater:
		return StyleRed.Render("▲ CHEATER")
	case domain.StatusHoliday:
		return StyleBlue.Render("○ HOLIDAY")
	case domain.StatusVacation:
		return StyleBlue.Render("○ VACATION")
	case domain.StatusSick:
		return StyleYellow.Render("○ SICK")
	default:
		return StyleDim.Render("○ INACTIVE")
	}
}

// EntryTypeBadge returns a colored label for an entry type.
func EntryTypeBadge(typ domain.EntryType) string {
	switch typ {
	case domain.EntryWork:
		return StyleGreen.Render(string(typ))
	case domain.EntryBreak:
		return StyleYellow.Render(string(typ))
	case domain.EntryLunch:
		return StylePurple.Render(string(typ))
	case domain.EntryPersonal:
		return StyleBlue.Render(string(typ))
	default:
		return StyleDim.Render(string(typ))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
