package remote

import (
	"time"

	"habitquest/internal/domain"
)

// ProfileRow is the wire shape of the hosted store's profiles table. The row
// is written as a whole on every flush (full-row upsert keyed by id), never
// as a field-level patch.
type ProfileRow struct {
	ID                  string                      `json:"id"`
	Username            string                      `json:"username"`
	Archetype           string                      `json:"archetype"`
	Difficulty          string                      `json:"difficulty"`
	XP                  int                         `json:"xp"`
	Level               int                         `json:"level"`
	CurrentStreak       int                         `json:"current_streak"`
	LongestStreak       int                         `json:"longest_streak"`
	DayStarted          string                      `json:"day_started"` // RFC3339
	CurrentDay          int                         `json:"current_day"`
	Habits              []*domain.Habit             `json:"habits"`
	Achievements        map[domain.Achievement]bool `json:"achievements"`
	TotalDaysCompleted  int                         `json:"total_days_completed"`
	PerfectDaysCount    int                         `json:"perfect_days_count"`
	PerfectDayRun       int                         `json:"perfect_day_run"`
	TotalXPEarned       int                         `json:"total_xp_earned"`
	CommitmentAnswers   domain.CommitmentAnswers    `json:"commitment_answers"`
	LastCompletedDate   string                      `json:"last_completed_date"`
	DayLockedAt         *string                     `json:"day_locked_at"`
	LastSubmitDate      string                      `json:"last_submit_date"`
	LastCelebrationDate *string                     `json:"last_celebration_date"`
	DailySideQuests     []string                    `json:"daily_side_quests"`
	CompletedSideQuests []string                    `json:"completed_side_quests"`
	SideQuestsDate      string                      `json:"side_quests_date"`
	UpdatedAt           string                      `json:"updated_at"`
}

// DayLogRow is the wire shape of one daily_logs row.
type DayLogRow struct {
	UserID    string `json:"user_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	DayNumber int    `json:"day_number"`
}

// RowFromProfile serializes a profile snapshot into its remote row. Level is
// derived at write time; it is stored remotely for query convenience but
// never read back as authoritative.
func RowFromProfile(p *domain.Profile) ProfileRow {
	row := ProfileRow{
		ID:                  p.UserID,
		Username:            p.Username,
		Archetype:           string(p.Archetype),
		Difficulty:          string(p.Difficulty),
		XP:                  p.XP,
		Level:               p.Level(),
		CurrentStreak:       p.CurrentStreak,
		LongestStreak:       p.LongestStreak,
		CurrentDay:          p.CurrentDay,
		Habits:              p.Habits,
		Achievements:        p.Achievements,
		TotalDaysCompleted:  p.TotalDaysCompleted,
		PerfectDaysCount:    p.PerfectDaysCount,
		PerfectDayRun:       p.PerfectDayRun,
		TotalXPEarned:       p.TotalXPEarned,
		CommitmentAnswers:   p.Commitment,
		LastSubmitDate:      p.LastSubmitDate,
		DailySideQuests:     p.DailySideQuests,
		CompletedSideQuests: p.CompletedSideQuests,
		SideQuestsDate:      p.SideQuestsDate,
		UpdatedAt:           p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if !p.DayStarted.IsZero() {
		row.DayStarted = p.DayStarted.Format(time.RFC3339)
	}
	if p.DayLockedAt != nil {
		s := p.DayLockedAt.Format(time.RFC3339)
		row.DayLockedAt = &s
	}
	if p.LastCelebrationDate != "" {
		s := p.LastCelebrationDate
		row.LastCelebrationDate = &s
	}
	row.LastCompletedDate = p.LastSubmitDate
	return row
}

// Profile deserializes the row back into domain state. Malformed timestamps
// degrade to zero values rather than failing the whole hydrate; the date
// utilities treat those as "no usable date".
func (r ProfileRow) Profile() *domain.Profile {
	p := domain.NewProfile(r.ID)
	p.Username = r.Username
	p.Archetype = domain.Archetype(r.Archetype)
	p.Difficulty = domain.Difficulty(r.Difficulty)
	p.XP = r.XP
	p.CurrentStreak = r.CurrentStreak
	p.LongestStreak = r.LongestStreak
	p.CurrentDay = r.CurrentDay
	if p.CurrentDay < 1 {
		p.CurrentDay = 1
	}
	if r.Habits != nil {
		p.Habits = r.Habits
	}
	for _, h := range p.Habits {
		if h.CompletedDates == nil {
			h.CompletedDates = []string{}
		}
	}
	if r.Achievements != nil {
		p.Achievements = r.Achievements
	}
	p.TotalDaysCompleted = r.TotalDaysCompleted
	p.PerfectDaysCount = r.PerfectDaysCount
	p.PerfectDayRun = r.PerfectDayRun
	p.TotalXPEarned = r.TotalXPEarned
	p.Commitment = r.CommitmentAnswers
	p.LastSubmitDate = r.LastSubmitDate
	p.DailySideQuests = r.DailySideQuests
	p.CompletedSideQuests = r.CompletedSideQuests
	p.SideQuestsDate = r.SideQuestsDate

	if t, err := time.Parse(time.RFC3339, r.DayStarted); err == nil {
		p.DayStarted = t
	}
	if r.DayLockedAt != nil {
		if t, err := time.Parse(time.RFC3339, *r.DayLockedAt); err == nil {
			p.DayLockedAt = &t
		}
	}
	if r.LastCelebrationDate != nil {
		p.LastCelebrationDate = *r.LastCelebrationDate
	}
	if t, err := time.Parse(time.RFC3339, r.UpdatedAt); err == nil {
		p.UpdatedAt = t
	}
	return p
}

// LogRowsFromHistory converts history entries into minimal day-log rows.
func LogRowsFromHistory(userID string, entries []domain.DayHistoryEntry) []DayLogRow {
	rows := make([]DayLogRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, DayLogRow{UserID: userID, Date: e.Date, DayNumber: e.DayNumber})
	}
	return rows
}
