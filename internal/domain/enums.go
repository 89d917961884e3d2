package domain

// HabitKind distinguishes behaviors being eliminated from behaviors being built.
type HabitKind string

const (
	KindDemon HabitKind = "demon"
	KindPower HabitKind = "power"
)

// Frequency is a habit's scheduling policy.
type Frequency string

const (
	FreqDaily      Frequency = "daily"
	FreqWeekdays   Frequency = "weekdays"
	FreqWeekends   Frequency = "weekends"
	FreqThreePerWk Frequency = "3x_week"
	FreqFivePerWk  Frequency = "5x_week"
)

// ValidFrequencies is the canonical set of accepted frequency strings.
var ValidFrequencies = map[string]bool{
	"daily": true, "weekdays": true, "weekends": true,
	"3x_week": true, "5x_week": true,
}

// PerWeekTarget returns the completion target for N-per-week frequencies,
// or 0 for day-of-week policies.
func (f Frequency) PerWeekTarget() int {
	switch f {
	case FreqThreePerWk:
		return 3
	case FreqFivePerWk:
		return 5
	default:
		return 0
	}
}

type Archetype string

const (
	ArchetypeSpecter   Archetype = "SPECTER"
	ArchetypeAscendant Archetype = "ASCENDANT"
	ArchetypeWrath     Archetype = "WRATH"
	ArchetypeSovereign Archetype = "SOVEREIGN"
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyExtreme Difficulty = "extreme"
)

// HabitStatus is a habit's terminal state within a submitted day snapshot.
type HabitStatus string

const (
	StatusCompleted HabitStatus = "completed"
	StatusMissed    HabitStatus = "missed"
	StatusRelapsed  HabitStatus = "relapsed"
)

// Achievement identifies a permanent milestone. Once unlocked an achievement
// is never revoked, even after the streak that earned it resets.
type Achievement string

const (
	AchFirstBlood   Achievement = "firstBlood"   // first submitted day
	AchWeekWarrior  Achievement = "weekWarrior"  // 7-day streak
	AchTwoWeeks     Achievement = "twoWeeks"     // 14-day streak
	AchMonthly      Achievement = "monthly"      // 30-day streak
	AchLockedIn     Achievement = "lockedIn"     // 45-day streak
	AchForged       Achievement = "forged"       // 66-day streak
	AchCenturion    Achievement = "centurion"    // 100-day streak
	AchPerfectWeek  Achievement = "perfectWeek"  // 7 consecutive perfect days
	AchPerfectMonth Achievement = "perfectMonth" // 30 perfect days overall
)

// StreakAchievements maps overall-streak thresholds to the achievement they unlock.
var StreakAchievements = map[Achievement]int{
	AchWeekWarrior: 7,
	AchTwoWeeks:    14,
	AchMonthly:     30,
	AchLockedIn:    45,
	AchForged:      66,
	AchCenturion:   100,
}

// Perfect-day achievement thresholds. The week requires an unbroken run of
// perfect days; the month is a cumulative total.
const (
	PerfectWeekRun    = 7
	PerfectMonthCount = 30
)
