package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"habitquest/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate renders a YYYY-MM-DD day key as a friendly absolute date.
// Malformed keys pass through unchanged.
func HumanDate(dayKey string, now time.Time) string {
	t, err := time.ParseInLocation("2006-01-02", dayKey, now.Location())
	if err != nil {
		return dayKey
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// Countdown formats a duration as H:MM:SS for the next-day timer.
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// XPDelta renders a signed XP change with gain/loss coloring.
func XPDelta(xp int) string {
	switch {
	case xp > 0:
		return StyleGreen.Render(fmt.Sprintf("+%d XP", xp))
	case xp < 0:
		return StyleRed.Render(fmt.Sprintf("%d XP", xp))
	default:
		return StyleDim.Render("0 XP")
	}
}

// StreakFlame renders a streak count with a flame for active streaks.
func StreakFlame(streak int) string {
	if streak <= 0 {
		return StyleDim.Render("0")
	}
	return StyleYellow.Render(fmt.Sprintf("🔥 %d", streak))
}

// AchievementLabel renders an unlocked achievement for the celebration screen.
func AchievementLabel(a domain.Achievement) string {
	names := map[domain.Achievement]string{
		domain.AchFirstBlood:   "First Blood",
		domain.AchWeekWarrior:  "Week Warrior",
		domain.AchTwoWeeks:     "Two Week Terror",
		domain.AchMonthly:      "Monthly Menace",
		domain.AchLockedIn:     "Locked In",
		domain.AchForged:       "Forged",
		domain.AchCenturion:    "Centurion",
		domain.AchPerfectWeek:  "Perfect Week",
		domain.AchPerfectMonth: "Perfect Month",
	}
	label, ok := names[a]
	if !ok {
		label = string(a)
	}
	return StylePurple.Render("★ " + label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FrequencyLabel returns a compact display label for a schedule policy.
func FrequencyLabel(f domain.Frequency) string {
	switch f {
	case domain.FreqDaily:
		return "daily"
	case domain.FreqWeekdays:
		return "weekdays"
	case domain.FreqWeekends:
		return "weekends"
	case domain.FreqThreePerWk:
		return "3x/week"
	case domain.FreqFivePerWk:
		return "5x/week"
	default:
		return string(f)
	}
}
