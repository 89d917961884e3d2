package engine

import (
	"testing"
	"time"

	"habitquest/internal/dateutil"
	"habitquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock lets tests cross day boundaries.
type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advanceDays(n int) {
	c.t = c.t.AddDate(0, 0, n)
}

// baseDay is a Wednesday so weekday/weekend schedules are unambiguous.
var baseDay = time.Date(2025, 3, 19, 8, 0, 0, 0, time.Local)

func newTestEngine(t *testing.T) (*Engine, *testClock) {
	t.Helper()
	clk := &testClock{t: baseDay}
	p := domain.NewProfile("user-1")
	p.Username = "TestWarrior"
	p.Archetype = domain.ArchetypeSpecter
	p.Difficulty = domain.DifficultyMedium
	p.DayStarted = baseDay.AddDate(0, 0, -4)
	p.CurrentDay = 5
	p.CurrentStreak = 5
	p.LongestStreak = 5
	p.XP = 500
	p.Habits = []*domain.Habit{
		{ID: "p1", Name: "Meditation", Kind: domain.KindPower, XP: 20, Frequency: domain.FreqDaily, Streak: 5, LongestStreak: 5, CompletedDates: []string{}},
		{ID: "p2", Name: "Cold Shower", Kind: domain.KindPower, XP: 20, Frequency: domain.FreqDaily, Streak: 5, LongestStreak: 5, CompletedDates: []string{}},
		{ID: "d1", Name: "No PMO", Kind: domain.KindDemon, XP: 30, Frequency: domain.FreqDaily, Streak: 5, LongestStreak: 7, CompletedDates: []string{}},
	}
	return New(p, WithClock(clk.now)), clk
}

func TestCompleteHabit_AwardsXPAndStreak(t *testing.T) {
	e, _ := newTestEngine(t)

	got := e.CompleteHabit("p1")
	assert.Equal(t, 20, got)

	snap := e.Snapshot()
	h := snap.HabitByID("p1")
	require.NotNil(t, h)
	assert.True(t, h.Completed)
	assert.Equal(t, 6, h.Streak)
	assert.Equal(t, 6, h.LongestStreak)
	assert.Equal(t, []string{dateutil.DayKey(baseDay)}, h.CompletedDates)
	assert.Equal(t, 520, snap.XP)
}

func TestCompleteHabit_RedundantCallIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)

	require.Equal(t, 20, e.CompleteHabit("p1"))
	assert.Equal(t, 0, e.CompleteHabit("p1")) // UI double-tap
	assert.Equal(t, 0, e.CompleteHabit("nope"))

	snap := e.Snapshot()
	assert.Equal(t, 520, snap.XP)
	assert.Len(t, snap.HabitByID("p1").CompletedDates, 1)
}

func TestOnChange_FiresOnMutationOnly(t *testing.T) {
	clk := &testClock{t: baseDay}
	p := domain.NewProfile("user-1")
	p.Habits = []*domain.Habit{
		{ID: "p1", Name: "Meditation", Kind: domain.KindPower, XP: 20, Frequency: domain.FreqDaily},
	}
	fired := 0
	e := New(p, WithClock(clk.now), WithOnChange(func() { fired++ }))

	e.CompleteHabit("p1")
	assert.Equal(t, 1, fired)

	e.CompleteHabit("p1") // redundant, no state change
	e.CompleteHabit("nope")
	assert.Equal(t, 1, fired)
}

func TestCompleteHabit_UnscheduledIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	// A weekends-only habit on a Wednesday.
	e.AddHabit("Long Hike", domain.KindPower, 25, domain.FreqWeekends)
	habits := e.Habits()
	id := habits[len(habits)-1].ID

	assert.Equal(t, 0, e.CompleteHabit(id))
}

func TestUncompleteHabit_UndoSymmetry(t *testing.T) {
	e, _ := newTestEngine(t)
	before := e.Snapshot()
	beforeHabit := before.HabitByID("p1")

	e.CompleteHabit("p1")
	removed := e.UncompleteHabit("p1")
	assert.Equal(t, 20, removed)

	after := e.Snapshot()
	afterHabit := after.HabitByID("p1")
	assert.Equal(t, before.XP, after.XP)
	assert.Equal(t, beforeHabit.Streak, afterHabit.Streak)
	assert.Len(t, afterHabit.CompletedDates, len(beforeHabit.CompletedDates))
	assert.False(t, afterHabit.Completed)
}

func TestUncompleteHabit_RequiresCompletion(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, 0, e.UncompleteHabit("p1"))
}

func TestRelapseHabit_PenaltyAndHonesty(t *testing.T) {
	e, _ := newTestEngine(t)

	// Streak 5, xp 30: penalty floor(5*30*0.5)=75, honesty +5, net -70.
	res := e.RelapseHabit("d1")
	require.NotNil(t, res)
	assert.Equal(t, 5, res.StreakLost)
	assert.Equal(t, 75, res.XPLost)
	assert.Equal(t, domain.HonestyReward, res.XPGained)
	assert.Equal(t, 7, res.LongestStreak)

	snap := e.Snapshot()
	assert.Equal(t, 430, snap.XP)
	h := snap.HabitByID("d1")
	assert.Equal(t, 0, h.Streak)
	assert.Equal(t, 7, h.LongestStreak) // high-water mark preserved
	assert.Equal(t, 1, h.Relapses)
	assert.True(t, h.RelapsedToday)
}

func TestRelapseHabit_XPFlooredAtZero(t *testing.T) {
	e, _ := newTestEngine(t)
	snap := e.Snapshot()
	snap.XP = 10
	snap.HabitByID("d1").Streak = 50 // penalty would be 750
	e.Replace(snap)

	res := e.RelapseHabit("d1")
	require.NotNil(t, res)
	assert.Equal(t, 10, res.XPLost) // only what was there to lose

	after := e.Snapshot()
	assert.Equal(t, domain.HonestyReward, after.XP)
	assert.GreaterOrEqual(t, after.XP, 0)
}

func TestRelapseHabit_Preconditions(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Nil(t, e.RelapseHabit("p1")) // powers cannot relapse

	e.CompleteHabit("d1")
	assert.Nil(t, e.RelapseHabit("d1")) // completed and relapsed are exclusive

	e.UncompleteHabit("d1")
	require.NotNil(t, e.RelapseHabit("d1"))
	assert.Nil(t, e.RelapseHabit("d1")) // already relapsed today
}

func TestSubmitDay_PerfectDayScenario(t *testing.T) {
	e, _ := newTestEngine(t)

	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")

	res := e.SubmitDay()
	require.NotNil(t, res)
	assert.True(t, res.IsPerfect)
	assert.Equal(t, 3, res.SuccessfulCount)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 0, res.RelapseCount)
	assert.Equal(t, 6, res.NewStreak)

	snap := e.Snapshot()
	assert.Equal(t, 500+20+20+30+domain.PerfectDayBonus, snap.XP)
	assert.Equal(t, 6, snap.CurrentStreak)
	assert.Equal(t, 1, snap.PerfectDaysCount)

	require.Len(t, snap.History, 1)
	entry := snap.History[0]
	assert.Equal(t, dateutil.DayKey(baseDay), entry.Date)
	assert.Equal(t, 5, entry.DayNumber)
	assert.True(t, entry.IsPerfect)
	assert.Equal(t, 3, entry.SuccessfulCount)
}

func TestSubmitDay_IdempotentWithinSameDay(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")

	require.NotNil(t, e.SubmitDay())
	xpAfterFirst := e.Snapshot().XP

	assert.Nil(t, e.SubmitDay()) // second call is a no-op

	snap := e.Snapshot()
	assert.Len(t, snap.History, 1)
	assert.Equal(t, xpAfterFirst, snap.XP)
	assert.Equal(t, 6, snap.CurrentStreak)
}

func TestSubmitDay_RejectsWhilePending(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CompleteHabit("p1")
	// p2 and d1 are still pending.
	assert.Nil(t, e.SubmitDay())
	assert.Empty(t, e.Snapshot().History)
}

func TestSubmitDay_RelapsedDemonIsTerminalButNotPerfect(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	require.NotNil(t, e.RelapseHabit("d1"))

	res := e.SubmitDay()
	require.NotNil(t, res)
	assert.False(t, res.IsPerfect)
	assert.Equal(t, 2, res.SuccessfulCount)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 1, res.RelapseCount)
	// Partial completion still continues the overall streak.
	assert.Equal(t, 6, res.NewStreak)
}

func TestSubmitDay_RestDayHabitExcluded(t *testing.T) {
	e, clk := newTestEngine(t)
	id := e.AddHabit("Gym", domain.KindPower, 30, domain.FreqThreePerWk)
	require.NotEmpty(t, id)

	// Bake three completions into this ISO week (Mon-Wed); today is Wednesday,
	// so the last completion was "earlier today" and we check on Thursday.
	snap := e.Snapshot()
	h := snap.HabitByID(id)
	h.CompletedDates = []string{"2025-03-17", "2025-03-18", "2025-03-19"}
	snap.LastSubmitDate = "2025-03-19"
	e.Replace(snap)
	clk.advanceDays(1) // Thursday
	e.CheckAndResetDay()

	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	// Gym is a rest day: not completing it must not block submission or
	// perfection.
	res := e.SubmitDay()
	require.NotNil(t, res)
	assert.True(t, res.IsPerfect)
	assert.Equal(t, 3, res.TotalCount)
}

func TestSubmitDay_SundaySettlesWeekStreaks(t *testing.T) {
	clk := &testClock{t: baseDay.AddDate(0, 0, 4)} // Sunday, Mar 23
	p := domain.NewProfile("user-1")
	p.Habits = []*domain.Habit{
		{ID: "g1", Name: "Gym", Kind: domain.KindPower, XP: 30, Frequency: domain.FreqThreePerWk,
			CompletedDates: []string{"2025-03-17", "2025-03-18", "2025-03-19"}},
		{ID: "g2", Name: "Swim", Kind: domain.KindPower, XP: 30, Frequency: domain.FreqThreePerWk,
			CompletedDates: []string{"2025-03-17"}, WeekStreak: 2},
	}
	e := New(p, WithClock(clk.now))

	// Gym met its 3x target so it rests today; Swim missed (1 of 3) and is
	// still scheduled, so resolve it before submitting.
	require.Equal(t, 30, e.CompleteHabit("g2"))
	res := e.SubmitDay()
	require.NotNil(t, res)

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.HabitByID("g1").WeekStreak)
	assert.Equal(t, 0, snap.HabitByID("g2").WeekStreak) // 2 of 3, target missed
}

func TestSubmitDay_NoScheduledHabits(t *testing.T) {
	clk := &testClock{t: baseDay}
	p := domain.NewProfile("user-1")
	p.Habits = []*domain.Habit{
		{ID: "w1", Name: "Long Hike", Kind: domain.KindPower, XP: 25, Frequency: domain.FreqWeekends},
	}
	e := New(p, WithClock(clk.now))

	// Wednesday: nothing scheduled. The day submits but earns no perfect credit.
	res := e.SubmitDay()
	require.NotNil(t, res)
	assert.False(t, res.IsPerfect)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, 0, e.Snapshot().PerfectDaysCount)
}

func TestCheckAndResetDay_NoopBeforeFirstSubmission(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CompleteHabit("p1")
	assert.False(t, e.CheckAndResetDay())
	assert.True(t, e.Snapshot().HabitByID("p1").Completed)
}

func TestCheckAndResetDay_SameDayRepeatsAreStable(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	require.NotNil(t, e.SubmitDay())

	before := e.Snapshot()
	for i := 0; i < 5; i++ {
		e.CheckAndResetDay()
	}
	after := e.Snapshot()
	assert.Equal(t, before.CurrentDay, after.CurrentDay)
	assert.True(t, after.HabitByID("p1").Completed)
	assert.Equal(t, before.CurrentStreak, after.CurrentStreak)
}

func TestCheckAndResetDay_BoundaryResetsOnce(t *testing.T) {
	e, clk := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	require.NotNil(t, e.RelapseHabit("d1"))
	require.NotNil(t, e.SubmitDay())

	clk.advanceDays(1)
	assert.True(t, e.CheckAndResetDay())

	snap := e.Snapshot()
	for _, h := range snap.Habits {
		assert.False(t, h.Completed, h.Name)
		assert.False(t, h.RelapsedToday, h.Name)
	}
	// Permanent records survive the reset.
	assert.Len(t, snap.HabitByID("p1").CompletedDates, 1)
	assert.Equal(t, 1, snap.HabitByID("d1").Relapses)
	assert.Equal(t, 6, snap.CurrentStreak) // only one night passed, streak holds
}

func TestCheckAndResetDay_PreservesTodaysProgress(t *testing.T) {
	e, clk := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	require.NotNil(t, e.SubmitDay())

	clk.advanceDays(1)
	e.CheckAndResetDay()

	// User logs progress on the new open day; the minute timer keeps firing.
	e.CompleteHabit("p1")
	e.CheckAndResetDay()
	e.CheckAndResetDay()

	snap := e.Snapshot()
	assert.True(t, snap.HabitByID("p1").Completed, "rollover check must not wipe same-day progress")
}

func TestCheckAndResetDay_MissedDaysResetOverallStreak(t *testing.T) {
	e, clk := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	require.NotNil(t, e.SubmitDay())

	clk.advanceDays(3) // two whole days missed
	e.CheckAndResetDay()

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.CurrentStreak)
	assert.Equal(t, 6, snap.LongestStreak) // high-water mark survives
}

func TestCheckAndResetDay_RecomputesCurrentDay(t *testing.T) {
	e, clk := newTestEngine(t)
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	require.NotNil(t, e.SubmitDay())
	require.Equal(t, 6, e.Snapshot().CurrentDay)

	clk.advanceDays(3)
	e.CheckAndResetDay()
	// Day 5 started 4 days before baseDay; 7 days elapsed in total now.
	assert.Equal(t, 8, e.Snapshot().CurrentDay)
}

func TestAchievements_FirstSubmissionAndStreaks(t *testing.T) {
	e, _ := newTestEngine(t)
	snap := e.Snapshot()
	snap.CurrentStreak = 6 // will hit 7 on submission
	e.Replace(snap)

	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	res := e.SubmitDay()
	require.NotNil(t, res)

	ach := e.Achievements()
	assert.True(t, ach[domain.AchFirstBlood])
	assert.True(t, ach[domain.AchWeekWarrior])
	assert.False(t, ach[domain.AchTwoWeeks])
	assert.Contains(t, res.NewAchievements, domain.AchWeekWarrior)
}

func TestAchievements_NeverRevoked(t *testing.T) {
	e, clk := newTestEngine(t)
	snap := e.Snapshot()
	snap.CurrentStreak = 6
	e.Replace(snap)

	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	require.NotNil(t, e.SubmitDay())
	require.True(t, e.Achievements()[domain.AchWeekWarrior])

	// Miss several days so the streak resets, then submit a partial day.
	clk.advanceDays(4)
	e.CheckAndResetDay()
	require.Equal(t, 0, e.Snapshot().CurrentStreak)

	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	require.NotNil(t, e.RelapseHabit("d1"))
	require.NotNil(t, e.SubmitDay())

	assert.True(t, e.Achievements()[domain.AchWeekWarrior], "achievements are a permanent record")
}

func TestAchievements_PerfectWeekNeedsConsecutiveDays(t *testing.T) {
	clk := &testClock{t: baseDay}
	p := domain.NewProfile("user-1")
	p.DayStarted = baseDay
	p.Habits = []*domain.Habit{
		{ID: "p1", Name: "Meditation", Kind: domain.KindPower, XP: 20, Frequency: domain.FreqDaily, CompletedDates: []string{}},
	}
	e := New(p, WithClock(clk.now))

	perfectDay := func() {
		require.Equal(t, 20, e.CompleteHabit("p1"))
		require.NotNil(t, e.SubmitDay())
	}

	// Seven perfect days total, but a whole day missed after the fourth:
	// the cumulative count reaches seven while the run never does.
	for i := 0; i < 4; i++ {
		perfectDay()
		clk.advanceDays(1)
		e.CheckAndResetDay()
	}
	clk.advanceDays(2)
	e.CheckAndResetDay()
	for i := 0; i < 3; i++ {
		perfectDay()
		clk.advanceDays(1)
		e.CheckAndResetDay()
	}

	snap := e.Snapshot()
	require.Equal(t, 7, snap.PerfectDaysCount)
	assert.Equal(t, 3, snap.PerfectDayRun)
	assert.False(t, e.Achievements()[domain.AchPerfectWeek])
	assert.False(t, e.Achievements()[domain.AchPerfectMonth])

	// Four more uninterrupted perfect days complete a seven-day run.
	for i := 0; i < 4; i++ {
		perfectDay()
		clk.advanceDays(1)
		e.CheckAndResetDay()
	}
	assert.True(t, e.Achievements()[domain.AchPerfectWeek])
}

func TestSubmitDay_NonPerfectSubmissionBreaksPerfectRun(t *testing.T) {
	e, _ := newTestEngine(t)
	snap := e.Snapshot()
	snap.PerfectDayRun = 6
	snap.PerfectDaysCount = 6
	e.Replace(snap)

	// One habit missed: the day submits after resolving the demons, but the
	// perfect run is over.
	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	require.NotNil(t, e.RelapseHabit("d1"))
	require.NotNil(t, e.SubmitDay())

	got := e.Snapshot()
	assert.Equal(t, 0, got.PerfectDayRun)
	assert.Equal(t, 6, got.PerfectDaysCount)
	assert.False(t, e.Achievements()[domain.AchPerfectWeek])
}

func TestSideQuests_RefreshAndComplete(t *testing.T) {
	e, clk := newTestEngine(t)
	e.RefreshSideQuests()

	quests := e.SideQuests()
	require.Len(t, quests, domain.SideQuestsPerDay)

	xpBefore := e.Snapshot().XP
	earned := e.CompleteSideQuest(quests[0].ID)
	assert.Equal(t, quests[0].XP, earned)
	assert.Equal(t, xpBefore+earned, e.Snapshot().XP)

	// Double completion and unassigned quests are no-ops.
	assert.Equal(t, 0, e.CompleteSideQuest(quests[0].ID))
	assert.Equal(t, 0, e.CompleteSideQuest("sq-not-assigned-today"))

	// New day: assignment rolls, completion set clears.
	clk.advanceDays(1)
	e.RefreshSideQuests()
	for _, q := range e.SideQuests() {
		assert.False(t, q.Completed)
	}
}

func TestAddRemoveHabit(t *testing.T) {
	e, _ := newTestEngine(t)

	id := e.AddHabit("Journal", domain.KindPower, 15, domain.FreqDaily)
	require.NotEmpty(t, id)
	assert.Len(t, e.Habits(), 4)

	assert.Empty(t, e.AddHabit("", domain.KindPower, 15, domain.FreqDaily))
	assert.Empty(t, e.AddHabit("Bad XP", domain.KindPower, 0, domain.FreqDaily))

	assert.True(t, e.RemoveHabit(id))
	assert.False(t, e.RemoveHabit(id))
	assert.Len(t, e.Habits(), 3)
}

func TestInitializeHabits_StartsProgram(t *testing.T) {
	clk := &testClock{t: baseDay}
	e := New(domain.NewProfile("user-1"), WithClock(clk.now))

	info, ok := domain.ArchetypeByID(domain.ArchetypeSpecter)
	require.True(t, ok)
	e.InitializeHabits(append(info.Demons, info.Powers...))

	snap := e.Snapshot()
	assert.True(t, snap.HasOnboarded())
	assert.Len(t, snap.Habits, 6)
	assert.Equal(t, 1, snap.CurrentDay)
	assert.True(t, snap.DayStarted.Equal(baseDay))
}

func TestReset_ClearsEverythingButUserID(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CompleteHabit("p1")
	e.Reset()

	snap := e.Snapshot()
	assert.Equal(t, "user-1", snap.UserID)
	assert.Empty(t, snap.Habits)
	assert.Zero(t, snap.XP)
	assert.False(t, snap.HasOnboarded())
}

func TestTimeUntilUnlock(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Zero(t, e.TimeUntilUnlock())

	e.CompleteHabit("p1")
	e.CompleteHabit("p2")
	e.CompleteHabit("d1")
	require.NotNil(t, e.SubmitDay())

	// baseDay is 08:00, so 16 hours remain until midnight.
	assert.Equal(t, 16*time.Hour, e.TimeUntilUnlock())
}

func TestMarkCelebrationShown(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.False(t, e.WasCelebrationShownToday())
	e.MarkCelebrationShown()
	assert.True(t, e.WasCelebrationShownToday())
}
