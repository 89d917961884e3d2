package formatter

import (
	"fmt"
	"strings"

	"habitquest/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// LevelBar renders the XP progress toward the next level, like
// "LVL 3 [████░░░░░░] 210/500".
func LevelBar(level, into, needed, width int) string {
	if width < 2 {
		width = 2
	}
	if needed <= 0 {
		needed = 1
	}
	filled := into * width / needed
	if filled > width {
		filled = width
	}
	bar := StyleBlue.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("%s [%s] %d/%d",
		StyleBold.Render(fmt.Sprintf("LVL %d", level)), bar, into, needed)
}

// ProgramBar renders progress through the 66-day program colored by phase.
func ProgramBar(day, width int) string {
	if width < 2 {
		width = 2
	}
	if day < 1 {
		day = 1
	}
	done := day - 1
	if done > domain.ProgramDays {
		done = domain.ProgramDays
	}
	filled := done * width / domain.ProgramDays
	if filled > width {
		filled = width
	}
	style := PhaseStyle(domain.PhaseForDay(day))
	bar := style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("[%s] Day %d/%d", bar, day, domain.ProgramDays)
}
