package engine

import (
	"habitquest/internal/domain"

	"github.com/google/uuid"
)

// Onboarding setters. Each writes one field of the profile; the onboarding
// flow controller sequences them and implements "back" by clearing the field
// the following step set. Setters accept zero values for exactly that reason.

// SetUsername records the chosen display name ("" clears it).
func (e *Engine) SetUsername(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Username = name
	e.touch()
}

// SetCommitment records the commitment questionnaire answers.
func (e *Engine) SetCommitment(answers domain.CommitmentAnswers) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Commitment = answers
	e.touch()
}

// SetArchetype records the chosen persona ("" clears it).
func (e *Engine) SetArchetype(a domain.Archetype) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Archetype = a
	e.touch()
}

// SetDifficulty records the chosen difficulty ("" clears it).
func (e *Engine) SetDifficulty(d domain.Difficulty) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Difficulty = d
	e.touch()
}

// InitializeHabits seeds the roster from onboarding's confirmed templates and
// starts the 66-day clock. This is the final onboarding step; a non-empty
// roster is what marks onboarding complete.
func (e *Engine) InitializeHabits(templates []domain.HabitTemplate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(templates) == 0 {
		return
	}

	now := e.now()
	habits := make([]*domain.Habit, 0, len(templates))
	for _, t := range templates {
		freq := t.Frequency
		if !domain.ValidFrequencies[string(freq)] {
			freq = domain.FreqDaily
		}
		habits = append(habits, &domain.Habit{
			ID:             uuid.New().String(),
			Name:           t.Name,
			Kind:           t.Kind,
			XP:             t.XP,
			Frequency:      freq,
			CompletedDates: []string{},
			CreatedAt:      now.UTC(),
		})
	}

	e.profile.Habits = habits
	e.profile.DayStarted = now
	e.profile.CurrentDay = 1
	e.touch()
}

// Username returns the profile's display name.
func (e *Engine) Username() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Username
}

// Overview is a read-only summary for status rendering.
type Overview struct {
	Username      string
	Archetype     domain.Archetype
	Difficulty    domain.Difficulty
	XP            int
	Level         int
	Rank          domain.Rank
	Phase         domain.Phase
	CurrentDay    int
	CurrentStreak int
	LongestStreak int
	PerfectDays   int
	HabitCount    int
	Submitted     bool
	HasOnboarded  bool
}

// Overview snapshots the headline numbers in one locked read.
func (e *Engine) Overview() Overview {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.profile
	return Overview{
		Username:      p.Username,
		Archetype:     p.Archetype,
		Difficulty:    p.Difficulty,
		XP:            p.XP,
		Level:         p.Level(),
		Rank:          p.Rank(),
		Phase:         domain.PhaseForDay(p.CurrentDay),
		CurrentDay:    p.CurrentDay,
		CurrentStreak: p.CurrentStreak,
		LongestStreak: p.LongestStreak,
		PerfectDays:   p.PerfectDaysCount,
		HabitCount:    len(p.Habits),
		Submitted:     e.isTodaySubmittedLocked(),
		HasOnboarded:  p.HasOnboarded(),
	}
}
