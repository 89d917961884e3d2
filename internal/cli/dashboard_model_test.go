package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitquest/internal/bridge"
	"habitquest/internal/domain"
	"habitquest/internal/engine"
	"habitquest/internal/localstore"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	p := domain.NewProfile("user-1")
	p.Username = "TestWarrior"
	p.Archetype = domain.ArchetypeSpecter
	p.Difficulty = domain.DifficultyMedium
	p.CurrentDay = 3
	p.Habits = []*domain.Habit{
		{ID: "h-power", Name: "Morning run", Kind: domain.KindPower, XP: 25,
			Frequency: domain.FreqDaily, CompletedDates: []string{}},
		{ID: "h-demon", Name: "Doomscrolling", Kind: domain.KindDemon, XP: 30,
			Frequency: domain.FreqDaily, Streak: 4, CompletedDates: []string{}},
	}

	eng := engine.New(p)
	local, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	return &App{
		Engine: eng,
		Bridge: bridge.New(eng, local, nil, "user-1"),
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboard_CursorMovement(t *testing.T) {
	m := newDashboardModel(newTestApp(t))

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(dashboardModel)
	assert.Equal(t, 1, m.cursor)

	// Does not run past the end of the roster.
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(dashboardModel)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(dashboardModel)
	assert.Equal(t, 0, m.cursor)
}

func TestDashboard_CompleteAndUndo(t *testing.T) {
	app := newTestApp(t)
	m := newDashboardModel(app)

	updated, _ := m.Update(keyMsg("c"))
	m = updated.(dashboardModel)
	assert.Contains(t, m.notice, "Morning run")
	assert.Equal(t, 25, app.Engine.Snapshot().XP)

	// Completing again is a no-op.
	updated, _ = m.Update(keyMsg("c"))
	m = updated.(dashboardModel)
	assert.Contains(t, m.notice, "No change")
	assert.Equal(t, 25, app.Engine.Snapshot().XP)

	updated, _ = m.Update(keyMsg("u"))
	m = updated.(dashboardModel)
	assert.Contains(t, m.notice, "Undid")
	assert.Equal(t, 0, app.Engine.Snapshot().XP)

	app.Bridge.Wait()
}

func TestDashboard_RelapseOnDemon(t *testing.T) {
	app := newTestApp(t)
	m := newDashboardModel(app)

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(dashboardModel)
	updated, _ = m.Update(keyMsg("r"))
	m = updated.(dashboardModel)

	assert.Contains(t, m.notice, "Doomscrolling")
	snap := app.Engine.Snapshot()
	assert.Equal(t, 0, snap.HabitByID("h-demon").Streak)
	assert.Equal(t, 1, snap.HabitByID("h-demon").Relapses)

	app.Bridge.Wait()
}

func TestDashboard_SubmitFlow(t *testing.T) {
	app := newTestApp(t)
	m := newDashboardModel(app)

	// Submitting with pending habits shows guidance, not a celebration.
	updated, _ := m.Update(keyMsg("s"))
	m = updated.(dashboardModel)
	require.Nil(t, m.celebration)
	assert.Contains(t, m.notice, "Resolve every scheduled habit")

	updated, _ = m.Update(keyMsg("c"))
	m = updated.(dashboardModel)
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(dashboardModel)
	updated, _ = m.Update(keyMsg("c"))
	m = updated.(dashboardModel)

	updated, _ = m.Update(keyMsg("s"))
	m = updated.(dashboardModel)
	require.NotNil(t, m.celebration)
	assert.True(t, m.celebration.IsPerfect)
	assert.True(t, app.Engine.IsTodaySubmitted())

	view := m.View()
	assert.Contains(t, view, "complete")
	assert.Contains(t, view, "PERFECT DAY")

	app.Bridge.Wait()
}

func TestDashboard_ViewShowsRoster(t *testing.T) {
	m := newDashboardModel(newTestApp(t))
	view := m.View()
	assert.Contains(t, view, "TestWarrior")
	assert.Contains(t, view, "Morning run")
	assert.Contains(t, view, "Doomscrolling")
	assert.Contains(t, view, "Day 3/66")
}
