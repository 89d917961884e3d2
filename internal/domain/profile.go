package domain

import "time"

// Tuning constants for the 66-day program.
const (
	XPPerLevel      = 500
	PerfectDayBonus = 50
	HonestyReward   = 5 // granted for logging a relapse truthfully
	ProgramDays     = 66
)

// CommitmentAnswers holds the free-form answers captured during onboarding.
type CommitmentAnswers struct {
	Struggles   []string `json:"struggles"`
	Seriousness string   `json:"seriousness"`
	Identity    string   `json:"identity"`
	Ready       bool     `json:"ready"`
}

// Profile is the singleton per-user progress state. It is owned by the
// progression engine; presentation code reads snapshots and invokes engine
// operations, never mutating fields directly.
type Profile struct {
	UserID     string     `json:"-"`
	Username   string     `json:"username"`
	Archetype  Archetype  `json:"archetype"`
	Difficulty Difficulty `json:"difficulty"`
	Habits     []*Habit   `json:"habits"`

	XP            int `json:"xp"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	DayStarted time.Time `json:"dayStarted"`
	CurrentDay int       `json:"currentDay"` // 1-based; advances on submission, monotonic

	LastSubmitDate      string     `json:"lastSubmitDate"`      // YYYY-MM-DD, empty before first submission
	LastCelebrationDate string     `json:"lastCelebrationDate"` // YYYY-MM-DD
	DayLockedAt         *time.Time `json:"dayLockedAt"`

	Achievements       map[Achievement]bool `json:"achievements"`
	TotalDaysCompleted int                  `json:"totalDaysCompleted"`
	PerfectDaysCount   int                  `json:"perfectDaysCount"`
	// PerfectDayRun counts consecutive perfect submissions; a non-perfect
	// submission or a missed day resets it.
	PerfectDayRun int `json:"perfectDayRun"`
	TotalXPEarned int `json:"totalXpEarned"`

	Commitment CommitmentAnswers `json:"commitmentAnswers"`

	DailySideQuests     []string `json:"dailySideQuests"`
	CompletedSideQuests []string `json:"completedSideQuests"`
	SideQuestsDate      string   `json:"sideQuestsDate"`

	History []DayHistoryEntry `json:"history"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProfile returns an empty profile with initialized collections.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:       userID,
		Habits:       []*Habit{},
		CurrentDay:   1,
		Achievements: map[Achievement]bool{},
	}
}

// HasOnboarded reports whether onboarding finished. A non-empty habit list is
// the only signal; there is no separate completion flag. A user who removes
// every habit afterwards is routed back into onboarding, a known quirk kept
// for compatibility with existing data.
func (p *Profile) HasOnboarded() bool {
	return len(p.Habits) > 0
}

// HabitByID returns the habit with the given id, or nil.
func (p *Profile) HabitByID(id string) *Habit {
	for _, h := range p.Habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// HistoryFor returns a pointer to the day entry for date, or nil.
func (p *Profile) HistoryFor(date string) *DayHistoryEntry {
	for i := range p.History {
		if p.History[i].Date == date {
			return &p.History[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the profile. The persistence bridge serializes
// clones so in-flight flushes never observe concurrent engine mutations.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Habits = make([]*Habit, len(p.Habits))
	for i, h := range p.Habits {
		cp.Habits[i] = h.Clone()
	}
	cp.Achievements = make(map[Achievement]bool, len(p.Achievements))
	for k, v := range p.Achievements {
		cp.Achievements[k] = v
	}
	cp.Commitment.Struggles = append([]string(nil), p.Commitment.Struggles...)
	cp.DailySideQuests = append([]string(nil), p.DailySideQuests...)
	cp.CompletedSideQuests = append([]string(nil), p.CompletedSideQuests...)
	cp.History = make([]DayHistoryEntry, len(p.History))
	for i, e := range p.History {
		cp.History[i] = e
		cp.History[i].Habits = append([]HabitSnapshot(nil), e.Habits...)
	}
	if p.DayLockedAt != nil {
		t := *p.DayLockedAt
		cp.DayLockedAt = &t
	}
	return &cp
}

// LevelForXP derives the level from total XP. Levels are never stored; they
// are recomputed so the value can't drift from XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Level returns the profile's derived level.
func (p *Profile) Level() int {
	return LevelForXP(p.XP)
}

// LevelProgress returns XP accumulated within the current level and the XP
// required to reach the next one.
func (p *Profile) LevelProgress() (into, needed int) {
	xp := p.XP
	if xp < 0 {
		xp = 0
	}
	return xp % XPPerLevel, XPPerLevel
}

// Rank labels, coarsest gamification layer over level.
type Rank struct {
	Name     string
	MinLevel int
}

var ranks = []Rank{
	{Name: "SHADOW", MinLevel: 1},
	{Name: "INITIATE", MinLevel: 3},
	{Name: "DISCIPLE", MinLevel: 6},
	{Name: "WARRIOR", MinLevel: 10},
	{Name: "VETERAN", MinLevel: 15},
	{Name: "MASTER", MinLevel: 20},
	{Name: "LEGEND", MinLevel: 30},
}

// RankForLevel returns the highest rank whose threshold the level meets.
func RankForLevel(level int) Rank {
	r := ranks[0]
	for _, candidate := range ranks {
		if level >= candidate.MinLevel {
			r = candidate
		}
	}
	return r
}

// Rank returns the profile's derived rank.
func (p *Profile) Rank() Rank {
	return RankForLevel(p.Level())
}

// Phase is one third of the 66-day program.
type Phase struct {
	Name     string
	FirstDay int
	LastDay  int
}

var phases = []Phase{
	{Name: "FRAGILE", FirstDay: 1, LastDay: 22},
	{Name: "BUILDING", FirstDay: 23, LastDay: 44},
	{Name: "LOCKED IN", FirstDay: 45, LastDay: 66},
}

// PhaseForDay returns the program phase containing the given day. Days past
// the program end stay in the final phase.
func PhaseForDay(day int) Phase {
	for _, ph := range phases {
		if day >= ph.FirstDay && day <= ph.LastDay {
			return ph
		}
	}
	if day < 1 {
		return phases[0]
	}
	return phases[len(phases)-1]
}
