package domain

import "time"

// Habit is a single tracked behavior. Demons can be completed (stayed clean)
// or relapsed; powers only completed. CompletedDates is the permanent record
// and is never rewritten by day rollovers.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Kind           HabitKind `json:"type"`
	XP             int       `json:"xp"`
	Frequency      Frequency `json:"frequency"`
	Completed      bool      `json:"completed"`
	RelapsedToday  bool      `json:"relapsedToday"`
	CompletedDates []string  `json:"completedDates"` // YYYY-MM-DD, append-only
	Streak         int       `json:"streak"`
	LongestStreak  int       `json:"longestStreak"`
	Relapses       int       `json:"relapses"`
	// LastRelapseDate (YYYY-MM-DD) anchors RelapsedToday to a calendar date so
	// the rollover check can recompute the flag idempotently.
	LastRelapseDate string    `json:"lastRelapseDate,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	WeekStreak      int       `json:"weekStreak"` // consecutive weeks hitting an N-per-week target
}

// IsDemon reports whether the habit tracks a behavior being eliminated.
func (h *Habit) IsDemon() bool {
	return h.Kind == KindDemon
}

// Terminal reports whether the habit is in a terminal state for the day:
// completed, or relapsed in the case of demons.
func (h *Habit) Terminal() bool {
	return h.Completed || (h.IsDemon() && h.RelapsedToday)
}

// HasCompletedOn reports whether day (YYYY-MM-DD) is in the completion record.
func (h *Habit) HasCompletedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, used when snapshotting state for persistence.
func (h *Habit) Clone() *Habit {
	cp := *h
	cp.CompletedDates = append([]string(nil), h.CompletedDates...)
	return &cp
}
