package engine

import (
	"habitquest/internal/domain"
	"habitquest/internal/schedule"

	"github.com/google/uuid"
)

// RelapseResult reports what a relapse cost and preserved, for display.
type RelapseResult struct {
	HabitID       string
	StreakLost    int
	XPLost        int
	XPGained      int // honesty reward
	LongestStreak int // preserved high-water mark
}

// CompleteHabit marks a habit done for today. Valid only while the day is
// open, the habit is scheduled today, and it isn't already terminal; any
// precondition miss is a silent no-op returning 0. Returns the XP awarded.
func (e *Engine) CompleteHabit(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isTodaySubmittedLocked() {
		return 0
	}
	h := e.profile.HabitByID(id)
	if h == nil || h.Terminal() {
		return 0
	}
	if !schedule.IsScheduledOn(h.Frequency, e.now(), h.CompletedDates) {
		return 0
	}

	h.Completed = true
	h.CompletedDates = append(h.CompletedDates, e.today())
	h.Streak++
	if h.Streak > h.LongestStreak {
		h.LongestStreak = h.Streak
	}
	e.profile.XP += h.XP
	e.profile.TotalXPEarned += h.XP
	e.touch()
	return h.XP
}

// UncompleteHabit reverses a same-day completion before submission: the
// completion date, streak increment and XP award are all taken back. Returns
// the XP removed so the caller can render a negative delta. Undo does not
// exist once the day is submitted.
func (e *Engine) UncompleteHabit(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isTodaySubmittedLocked() {
		return 0
	}
	h := e.profile.HabitByID(id)
	if h == nil || !h.Completed {
		return 0
	}

	today := e.today()
	for i := len(h.CompletedDates) - 1; i >= 0; i-- {
		if h.CompletedDates[i] == today {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			break
		}
	}
	h.Completed = false
	if h.Streak > 0 {
		h.Streak--
	}
	e.profile.XP -= h.XP
	if e.profile.XP < 0 {
		e.profile.XP = 0
	}
	e.profile.TotalXPEarned -= h.XP
	if e.profile.TotalXPEarned < 0 {
		e.profile.TotalXPEarned = 0
	}
	e.touch()
	return h.XP
}

// RelapseHabit records a demon relapse: the habit streak resets, a penalty of
// half the lost streak's XP value is deducted (floored at zero total XP), and
// a small honesty reward is granted for logging truthfully. Returns nil when
// preconditions fail.
func (e *Engine) RelapseHabit(id string) *RelapseResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isTodaySubmittedLocked() {
		return nil
	}
	h := e.profile.HabitByID(id)
	if h == nil || !h.IsDemon() || h.Completed || h.RelapsedToday {
		return nil
	}

	streakLost := h.Streak
	penalty := streakLost * h.XP / 2

	xpBefore := e.profile.XP
	e.profile.XP -= penalty
	if e.profile.XP < 0 {
		e.profile.XP = 0
	}
	xpLost := xpBefore - e.profile.XP

	h.RelapsedToday = true
	h.LastRelapseDate = e.today()
	h.Streak = 0
	h.Relapses++

	e.profile.XP += domain.HonestyReward
	e.profile.TotalXPEarned += domain.HonestyReward

	e.touch()
	return &RelapseResult{
		HabitID:       h.ID,
		StreakLost:    streakLost,
		XPLost:        xpLost,
		XPGained:      domain.HonestyReward,
		LongestStreak: h.LongestStreak,
	}
}

// AddHabit creates a habit and appends it to the roster. Returns the new
// habit's id, or "" for invalid input.
func (e *Engine) AddHabit(name string, kind domain.HabitKind, xp int, freq domain.Frequency) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" || xp <= 0 {
		return ""
	}
	if kind != domain.KindDemon && kind != domain.KindPower {
		return ""
	}
	if !domain.ValidFrequencies[string(freq)] {
		freq = domain.FreqDaily
	}

	h := &domain.Habit{
		ID:             uuid.New().String(),
		Name:           name,
		Kind:           kind,
		XP:             xp,
		Frequency:      freq,
		CompletedDates: []string{},
		CreatedAt:      e.now().UTC(),
	}
	e.profile.Habits = append(e.profile.Habits, h)
	e.touch()
	return h.ID
}

// RemoveHabit deletes a habit permanently. History entries that reference it
// are left untouched; they are the immutable record.
func (e *Engine) RemoveHabit(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, h := range e.profile.Habits {
		if h.ID == id {
			e.profile.Habits = append(e.profile.Habits[:i], e.profile.Habits[i+1:]...)
			e.touch()
			return true
		}
	}
	return false
}

// Habits returns a deep copy of the habit roster in display order.
func (e *Engine) Habits() []*domain.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*domain.Habit, len(e.profile.Habits))
	for i, h := range e.profile.Habits {
		out[i] = h.Clone()
	}
	return out
}

// ScheduledToday returns copies of the habits due today.
func (e *Engine) ScheduledToday() []*domain.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*domain.Habit
	for _, h := range e.scheduledTodayLocked() {
		out = append(out, h.Clone())
	}
	return out
}

// History returns a copy of the submitted-day log, oldest first.
func (e *Engine) History() []domain.DayHistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.DayHistoryEntry, len(e.profile.History))
	for i, entry := range e.profile.History {
		out[i] = entry
		out[i].Habits = append([]domain.HabitSnapshot(nil), entry.Habits...)
	}
	return out
}

// Reset wipes progress back to first-run defaults, keeping only the user id.
// Callers are expected to purge remote state first (see the bridge).
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	userID := e.profile.UserID
	e.profile = domain.NewProfile(userID)
	e.touch()
}
