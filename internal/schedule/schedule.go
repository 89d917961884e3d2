// Package schedule resolves whether a habit is due on a given calendar date
// based on its frequency policy.
package schedule

import (
	"time"

	"habitquest/internal/dateutil"
	"habitquest/internal/domain"
)

// IsScheduledOn reports whether a habit with the given frequency is due on
// date. completionDates is the habit's completion record (YYYY-MM-DD).
//
// For N-per-week policies the habit is due until it has accumulated N
// completions inside the current Mon–Sun window; after that the remaining
// days of the week are rest days, whichever days the user picked. A day the
// habit was actually completed on always counts as scheduled, so hitting the
// weekly target doesn't retroactively unschedule today's completion.
func IsScheduledOn(freq domain.Frequency, date time.Time, completionDates []string) bool {
	switch freq {
	case domain.FreqDaily:
		return true
	case domain.FreqWeekdays:
		wd := date.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case domain.FreqWeekends:
		wd := date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case domain.FreqThreePerWk, domain.FreqFivePerWk:
		day := dateutil.DayKey(date)
		for _, d := range completionDates {
			if d == day {
				return true
			}
		}
		return WeekCompletionCount(completionDates, date) < freq.PerWeekTarget()
	default:
		// Unknown frequencies behave as daily rather than silently vanishing
		// from the schedule.
		return true
	}
}

// WeekCompletionCount counts completion dates that fall inside the ISO week
// (Monday through Sunday) containing now. Malformed dates are skipped.
func WeekCompletionCount(completionDates []string, now time.Time) int {
	weekStart := dateutil.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	count := 0
	for _, s := range completionDates {
		d, ok := dateutil.ParseLocalDate(s)
		if !ok {
			continue
		}
		if !d.Before(weekStart) && d.Before(weekEnd) {
			count++
		}
	}
	return count
}
