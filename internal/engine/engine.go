// Package engine owns the in-memory progression state: habits, streaks, XP,
// achievements and day history. All operations are synchronous in-memory
// mutations with no failure mode of their own; precondition misses (double
// taps, races with the rollover timer) are silent no-ops rather than errors.
// Persistence is somebody else's problem: the engine only signals that state
// changed through the onChange hook.
package engine

import (
	"sync"
	"time"

	"habitquest/internal/dateutil"
	"habitquest/internal/domain"
	"habitquest/internal/schedule"
)

// Engine is the single mutation point for a user's progress state.
type Engine struct {
	mu      sync.Mutex
	profile *domain.Profile

	// now is injectable so tests can cross day boundaries.
	now func() time.Time

	// onChange fires after every mutating operation, outside no-op paths.
	// The persistence bridge uses it to mark state dirty.
	onChange func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithOnChange registers the dirty-state hook.
func WithOnChange(fn func()) Option {
	return func(e *Engine) { e.onChange = fn }
}

// New creates an Engine around an existing profile. Pass a fresh
// domain.NewProfile for first-run users.
func New(profile *domain.Profile, opts ...Option) *Engine {
	e := &Engine{
		profile:  profile,
		now:      time.Now,
		onChange: func() {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Replace swaps in a hydrated profile wholesale. Only the persistence
// bridge's hydrate path uses this; network responses never patch individual
// fields of live state.
func (e *Engine) Replace(p *domain.Profile) {
	e.mu.Lock()
	e.profile = p
	e.mu.Unlock()
}

// Snapshot returns a deep copy of the current profile for serialization.
func (e *Engine) Snapshot() *domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Clone()
}

// touch stamps the profile and fires the change hook. Callers hold e.mu.
func (e *Engine) touch() {
	e.profile.UpdatedAt = e.now().UTC()
	e.onChange()
}

// today returns the current day key. Callers hold e.mu.
func (e *Engine) today() string {
	return dateutil.DayKey(e.now())
}

// IsTodaySubmitted reports whether today's day entry has been written.
func (e *Engine) IsTodaySubmitted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isTodaySubmittedLocked()
}

func (e *Engine) isTodaySubmittedLocked() bool {
	return e.profile.LastSubmitDate != "" && e.profile.LastSubmitDate == e.today()
}

// Rank returns the derived rank label.
func (e *Engine) Rank() domain.Rank {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Rank()
}

// Phase returns the program phase for the current day.
func (e *Engine) Phase() domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.PhaseForDay(e.profile.CurrentDay)
}

// LevelProgress returns XP into the current level and the level size.
func (e *Engine) LevelProgress() (into, needed int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.LevelProgress()
}

// TimeUntilUnlock returns how long until the next day opens. Zero when the
// current day has not been submitted.
func (e *Engine) TimeUntilUnlock() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isTodaySubmittedLocked() {
		return 0
	}
	now := e.now()
	return dateutil.NextMidnight(now).Sub(now)
}

// WasCelebrationShownToday reports whether the submit celebration has already
// been rendered for today's submission.
func (e *Engine) WasCelebrationShownToday() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.LastCelebrationDate == e.today()
}

// MarkCelebrationShown records that today's celebration was rendered, so a
// reload doesn't replay it.
func (e *Engine) MarkCelebrationShown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	today := e.today()
	if e.profile.LastCelebrationDate == today {
		return
	}
	e.profile.LastCelebrationDate = today
	e.touch()
}

// scheduledTodayLocked returns the habits due today. Callers hold e.mu.
func (e *Engine) scheduledTodayLocked() []*domain.Habit {
	now := e.now()
	var due []*domain.Habit
	for _, h := range e.profile.Habits {
		if schedule.IsScheduledOn(h.Frequency, now, h.CompletedDates) {
			due = append(due, h)
		}
	}
	return due
}
