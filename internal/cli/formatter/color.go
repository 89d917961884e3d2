package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitquest/internal/domain"
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

// HabitPill returns a colored state indicator for a habit's standing today.
// scheduled=false renders a dim rest-day marker regardless of other state.
func HabitPill(h *domain.Habit, scheduled bool) string {
	switch {
	case !scheduled:
		return StyleDim.Render("· Rest day")
	case h.Completed && h.IsDemon():
		return StyleGreen.Render("✔ Clean")
	case h.Completed:
		return StyleGreen.Render("✔ Done")
	case h.IsDemon() && h.RelapsedToday:
		return StyleRed.Render("✖ Relapsed")
	default:
		return StyleYellow.Render("○ Pending")
	}
}

// KindBadge returns the colored demon/power label.
func KindBadge(kind domain.HabitKind) string {
	if kind == domain.KindDemon {
		return StyleRed.Render("DEMON")
	}
	return StyleBlue.Render("POWER")
}

// PhaseStyle returns the style that colors a program phase.
func PhaseStyle(ph domain.Phase) lipgloss.Style {
	switch ph.Name {
	case "FRAGILE":
		return StyleRed
	case "BUILDING":
		return StyleYellow
	case "LOCKED IN":
		return StyleGreen
	default:
		return StyleDim
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
