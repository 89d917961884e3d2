package engine

import (
	"time"

	"habitquest/internal/domain"
	"habitquest/internal/schedule"
)

// SubmitResult is returned from a successful day submission for the
// celebration screen.
type SubmitResult struct {
	DayNumber       int
	NewStreak       int
	IsPerfect       bool
	SuccessfulCount int
	TotalCount      int
	RelapseCount    int
	XPEarned        int
	NewAchievements []domain.Achievement
}

// SubmitDay closes out today: it snapshots every scheduled habit, writes the
// day-history entry, applies the perfect-day bonus, advances the overall
// streak and day counter, and evaluates achievements. Valid only when every
// scheduled habit is terminal (completed, or relapsed for demons); otherwise,
// and on resubmission of an already-submitted day, it is a silent no-op
// returning nil.
//
// The history write is an overwrite keyed by date, so a crash between the
// submit and the flush can never duplicate an entry on resubmission.
func (e *Engine) SubmitDay() *SubmitResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isTodaySubmittedLocked() {
		return nil
	}

	scheduled := e.scheduledTodayLocked()
	for _, h := range scheduled {
		if !h.Terminal() {
			return nil
		}
	}

	today := e.today()
	successful := 0
	relapses := 0
	dayXP := 0
	snapshots := make([]domain.HabitSnapshot, 0, len(scheduled))
	for _, h := range scheduled {
		status := domain.StatusMissed
		switch {
		case h.Completed:
			status = domain.StatusCompleted
			successful++
			dayXP += h.XP
		case h.IsDemon() && h.RelapsedToday:
			status = domain.StatusRelapsed
			relapses++
		}
		snapshots = append(snapshots, domain.HabitSnapshot{
			HabitID: h.ID,
			Name:    h.Name,
			Kind:    h.Kind,
			Status:  status,
			XP:      h.XP,
			Streak:  h.Streak,
		})
	}

	// A day with no scheduled habits at all submits cleanly but earns no
	// perfect-day credit; perfection requires having done something.
	isPerfect := len(scheduled) > 0 && successful == len(scheduled)
	if isPerfect {
		e.profile.XP += domain.PerfectDayBonus
		e.profile.TotalXPEarned += domain.PerfectDayBonus
		e.profile.PerfectDaysCount++
		e.profile.PerfectDayRun++
		dayXP += domain.PerfectDayBonus
	} else {
		e.profile.PerfectDayRun = 0
	}

	// Overall streak continues as long as the user completed anything today.
	// Partial days never reset it; only missed-day rollover detection does.
	if successful > 0 {
		e.profile.CurrentStreak++
		if e.profile.CurrentStreak > e.profile.LongestStreak {
			e.profile.LongestStreak = e.profile.CurrentStreak
		}
	}

	// Sunday closes the Mon-Sun window: settle weekly streaks for habits
	// with an N-per-week target, including ones resting today.
	now := e.now()
	if now.Weekday() == time.Sunday {
		for _, h := range e.profile.Habits {
			target := h.Frequency.PerWeekTarget()
			if target == 0 {
				continue
			}
			if schedule.WeekCompletionCount(h.CompletedDates, now) >= target {
				h.WeekStreak++
			} else {
				h.WeekStreak = 0
			}
		}
	}

	entry := domain.DayHistoryEntry{
		Date:            today,
		DayNumber:       e.profile.CurrentDay,
		Habits:          snapshots,
		SuccessfulCount: successful,
		TotalCount:      len(scheduled),
		IsPerfect:       isPerfect,
		RelapseCount:    relapses,
		XPEarned:        dayXP,
	}
	if existing := e.profile.HistoryFor(today); existing != nil {
		*existing = entry
	} else {
		e.profile.History = append(e.profile.History, entry)
		e.profile.TotalDaysCompleted++
	}

	e.profile.CurrentDay++
	e.profile.LastSubmitDate = today
	e.profile.DayLockedAt = &now

	unlocked := e.evaluateAchievementsLocked()

	e.touch()
	return &SubmitResult{
		DayNumber:       entry.DayNumber,
		NewStreak:       e.profile.CurrentStreak,
		IsPerfect:       isPerfect,
		SuccessfulCount: successful,
		TotalCount:      entry.TotalCount,
		RelapseCount:    relapses,
		XPEarned:        dayXP,
		NewAchievements: unlocked,
	}
}

// evaluateAchievementsLocked unlocks any newly-qualifying milestones and
// returns them. Achievements record having once reached a state; they are a
// set union and never revert. Callers hold e.mu.
func (e *Engine) evaluateAchievementsLocked() []domain.Achievement {
	p := e.profile
	var unlocked []domain.Achievement

	unlock := func(a domain.Achievement) {
		if !p.Achievements[a] {
			p.Achievements[a] = true
			unlocked = append(unlocked, a)
		}
	}

	if p.TotalDaysCompleted >= 1 {
		unlock(domain.AchFirstBlood)
	}
	for a, threshold := range domain.StreakAchievements {
		if p.CurrentStreak >= threshold {
			unlock(a)
		}
	}
	if p.PerfectDayRun >= domain.PerfectWeekRun {
		unlock(domain.AchPerfectWeek)
	}
	if p.PerfectDaysCount >= domain.PerfectMonthCount {
		unlock(domain.AchPerfectMonth)
	}
	return unlocked
}

// Achievements returns a copy of the unlocked-achievement map.
func (e *Engine) Achievements() map[domain.Achievement]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[domain.Achievement]bool, len(e.profile.Achievements))
	for k, v := range e.profile.Achievements {
		out[k] = v
	}
	return out
}
