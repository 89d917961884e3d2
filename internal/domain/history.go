package domain

// HabitSnapshot freezes one habit's outcome inside a submitted day entry.
type HabitSnapshot struct {
	HabitID string      `json:"habitId"`
	Name    string      `json:"name"`
	Kind    HabitKind   `json:"type"`
	Status  HabitStatus `json:"status"`
	XP      int         `json:"xp"`
	Streak  int         `json:"streak"` // habit streak at submission time
}

// DayHistoryEntry is the immutable record of one submitted day, keyed by
// calendar date. At most one entry exists per date; resubmitting the same
// date overwrites in place rather than appending.
type DayHistoryEntry struct {
	Date            string          `json:"date"` // YYYY-MM-DD
	DayNumber       int             `json:"dayNumber"`
	Habits          []HabitSnapshot `json:"habits"`
	SuccessfulCount int             `json:"successfulCount"`
	TotalCount      int             `json:"totalCount"` // habits scheduled that day
	IsPerfect       bool            `json:"isPerfect"`
	RelapseCount    int             `json:"relapseCount"`
	XPEarned        int             `json:"xpEarned"`
}
