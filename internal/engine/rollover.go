package engine

import (
	"time"

	"habitquest/internal/dateutil"
)

// RolloverInterval is how often foregrounded surfaces re-check for a day
// boundary. The client has no push channel, so the boundary is detected by
// polling wall-clock time.
const RolloverInterval = time.Minute

// CheckAndResetDay detects a passed day boundary and reopens the day: habit
// completed/relapsed flags are recomputed for the new date (the completion
// record and streak values are untouched; they are the permanent record) and
// the current day number is re-derived from elapsed calendar days. When one or
// more whole days were missed between the last submission and today, the
// overall streak resets to zero.
//
// The check is idempotent: flags are derived from per-date records rather
// than blindly cleared, so calling it every minute can never wipe progress
// the user logged since the boundary. Returns true when a boundary was
// crossed since the last submission.
func (e *Engine) CheckAndResetDay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profile
	if p.LastSubmitDate == "" {
		return false
	}

	today := e.today()
	last, ok := dateutil.ParseLocalDate(p.LastSubmitDate)
	if !ok || p.LastSubmitDate >= today {
		return false
	}

	changed := false
	for _, h := range p.Habits {
		completed := h.HasCompletedOn(today)
		relapsed := h.IsDemon() && h.LastRelapseDate == today
		if h.Completed != completed || h.RelapsedToday != relapsed {
			h.Completed = completed
			h.RelapsedToday = relapsed
			changed = true
		}
	}

	if dateutil.DaysBetween(last, e.now()) > 1 {
		// At least one full calendar day passed with no submission; the
		// missed day also breaks any run of perfect days.
		if p.CurrentStreak != 0 {
			p.CurrentStreak = 0
			changed = true
		}
		if p.PerfectDayRun != 0 {
			p.PerfectDayRun = 0
			changed = true
		}
	}

	if !p.DayStarted.IsZero() {
		derived := dateutil.DaysBetween(p.DayStarted, e.now()) + 1
		if derived > p.CurrentDay {
			p.CurrentDay = derived
			changed = true
		}
	}

	if p.DayLockedAt != nil {
		p.DayLockedAt = nil
		changed = true
	}

	if changed {
		e.touch()
	}
	return true
}
