package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"habitquest/internal/domain"
	"habitquest/internal/engine"
)

// tickMsg drives the countdown display and the day-boundary poll.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// keyMap defines the dashboard keybindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Undo     key.Binding
	Relapse  key.Binding
	Submit   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Complete: key.NewBinding(key.WithKeys("c", "enter")),
		Undo:     key.NewBinding(key.WithKeys("u")),
		Relapse:  key.NewBinding(key.WithKeys("r")),
		Submit:   key.NewBinding(key.WithKeys("s")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// dashboardModel is the interactive tracking screen. All state lives in the
// engine; the model only keeps cursor position and transient notices.
type dashboardModel struct {
	app  *App
	keys keyMap

	cursor       int
	notice       string
	celebration  *engine.SubmitResult
	lastRollover time.Time
	width        int
	quitting     bool
}

func newDashboardModel(app *App) dashboardModel {
	return dashboardModel{
		app:          app,
		keys:         defaultKeyMap(),
		lastRollover: time.Now(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

// visibleHabits returns the full roster with today's scheduled set, so rest
// days render as context instead of disappearing.
func (m dashboardModel) visibleHabits() ([]*domain.Habit, map[string]bool) {
	habits := m.app.Engine.Habits()
	scheduled := make(map[string]bool)
	for _, h := range m.app.Engine.ScheduledToday() {
		scheduled[h.ID] = true
	}
	return habits, scheduled
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if time.Since(m.lastRollover) >= engine.RolloverInterval {
			m.lastRollover = time.Now()
			if m.app.Engine.CheckAndResetDay() {
				m.app.Engine.RefreshSideQuests()
				m.celebration = nil
				m.clampCursor()
			}
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits, _ := m.visibleHabits()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.app.Bridge.Flush(context.Background())
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(habits)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Complete):
		if h := m.habitUnderCursor(habits); h != nil {
			if xp := m.app.Engine.CompleteHabit(h.ID); xp > 0 {
				m.notice = noticeCompleted(h.Name, xp)
				m.app.Bridge.Flush(context.Background())
			} else {
				m.notice = noticeNoop(h.Name)
			}
		}

	case key.Matches(msg, m.keys.Undo):
		if h := m.habitUnderCursor(habits); h != nil {
			if xp := m.app.Engine.UncompleteHabit(h.ID); xp > 0 {
				m.notice = noticeUndone(h.Name, xp)
				m.app.Bridge.Flush(context.Background())
			} else {
				m.notice = noticeNoop(h.Name)
			}
		}

	case key.Matches(msg, m.keys.Relapse):
		if h := m.habitUnderCursor(habits); h != nil {
			if res := m.app.Engine.RelapseHabit(h.ID); res != nil {
				m.notice = noticeRelapsed(h.Name, res)
				m.app.Bridge.Flush(context.Background())
			} else {
				m.notice = noticeNoop(h.Name)
			}
		}

	case key.Matches(msg, m.keys.Submit):
		if res := m.app.Engine.SubmitDay(); res != nil {
			m.celebration = res
			m.notice = ""
			m.app.Engine.MarkCelebrationShown()
			m.app.Bridge.Flush(context.Background())
		} else if !m.app.Engine.IsTodaySubmitted() {
			m.notice = "Resolve every scheduled habit before submitting."
		}
	}
	return m, nil
}

func (m *dashboardModel) habitUnderCursor(habits []*domain.Habit) *domain.Habit {
	if m.cursor < 0 || m.cursor >= len(habits) {
		return nil
	}
	return habits[m.cursor]
}

func (m *dashboardModel) clampCursor() {
	n := len(m.app.Engine.Habits())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
