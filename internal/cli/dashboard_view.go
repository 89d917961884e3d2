package cli

import (
	"fmt"
	"strings"

	"habitquest/internal/bridge"
	"habitquest/internal/cli/formatter"
	"habitquest/internal/engine"
)

func noticeCompleted(name string, xp int) string {
	return fmt.Sprintf("%s %s  %s",
		formatter.StyleGreen.Render("✔"), name, formatter.XPDelta(xp))
}

func noticeUndone(name string, xp int) string {
	return fmt.Sprintf("Undid %s  %s", name, formatter.XPDelta(-xp))
}

func noticeRelapsed(name string, res *engine.RelapseResult) string {
	return fmt.Sprintf("%s %s  streak lost: %d  %s  honesty %s",
		formatter.StyleRed.Render("✖"), name,
		res.StreakLost, formatter.XPDelta(-res.XPLost), formatter.XPDelta(res.XPGained))
}

func noticeNoop(name string) string {
	return formatter.Dim(fmt.Sprintf("No change for %s", name))
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	ov := m.app.Engine.Overview()
	if !ov.HasOnboarded {
		return "\nNo profile yet. Run 'habitquest onboard' first.\n\nPress q to quit.\n"
	}

	var b strings.Builder

	into, needed := m.app.Engine.LevelProgress()
	phase := formatter.PhaseStyle(ov.Phase).Render(ov.Phase.Name)
	fmt.Fprintf(&b, "\n %s  %s  %s\n",
		formatter.Bold(ov.Username),
		formatter.StyleHeader.Render(ov.Rank.Name),
		phase)
	fmt.Fprintf(&b, " %s\n", formatter.LevelBar(ov.Level, into, needed, 20))
	fmt.Fprintf(&b, " %s   Streak: %s\n\n",
		formatter.ProgramBar(ov.CurrentDay, 22), formatter.StreakFlame(ov.CurrentStreak))

	if m.celebration != nil {
		b.WriteString(m.celebrationView())
	} else {
		b.WriteString(m.habitListView())
	}

	if m.notice != "" {
		fmt.Fprintf(&b, "\n %s\n", m.notice)
	}
	b.WriteString(m.footerView(ov.Submitted))
	return b.String()
}

func (m dashboardModel) habitListView() string {
	habits, scheduled := m.visibleHabits()
	if len(habits) == 0 {
		return " No habits in the roster.\n"
	}

	var b strings.Builder
	for i, h := range habits {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		fmt.Fprintf(&b, " %s%s  %s  %s\n",
			cursor,
			formatter.HabitPill(h, scheduled[h.ID]),
			h.Name,
			formatter.Dim(fmt.Sprintf("%d XP · streak %d", h.XP, h.Streak)))
	}

	if quests := m.app.Engine.SideQuests(); len(quests) > 0 {
		b.WriteString("\n " + formatter.Dim("Side quests:") + "\n")
		for _, q := range quests {
			mark := formatter.StyleYellow.Render("○")
			if q.Completed {
				mark = formatter.StyleGreen.Render("✔")
			}
			fmt.Fprintf(&b, "   %s %s %s\n", mark, q.Name,
				formatter.Dim(fmt.Sprintf("+%d XP", q.XP)))
		}
	}
	return b.String()
}

func (m dashboardModel) celebrationView() string {
	res := m.celebration
	var b strings.Builder
	fmt.Fprintf(&b, " %s\n\n", formatter.Header(fmt.Sprintf("Day %d complete", res.DayNumber)))
	fmt.Fprintf(&b, "   Habits %d/%d   %s\n", res.SuccessfulCount, res.TotalCount,
		formatter.XPDelta(res.XPEarned))
	if res.IsPerfect {
		fmt.Fprintf(&b, "   %s\n", formatter.StyleGreen.Render("PERFECT DAY"))
	}
	for _, a := range res.NewAchievements {
		fmt.Fprintf(&b, "   Unlocked %s\n", formatter.AchievementLabel(a))
	}
	return b.String()
}

func (m dashboardModel) footerView(submitted bool) string {
	var b strings.Builder
	if submitted {
		fmt.Fprintf(&b, "\n %s %s\n",
			formatter.StyleGreen.Render("Day submitted."),
			formatter.Dim("Next day in "+formatter.Countdown(m.app.Engine.TimeUntilUnlock())))
	}

	if state, _ := m.app.Bridge.Status(); state == bridge.StateError {
		fmt.Fprintf(&b, " %s\n", formatter.StyleYellow.Render("offline — saving locally"))
	} else if state == bridge.StateLocalOnly {
		fmt.Fprintf(&b, " %s\n", formatter.Dim("local only"))
	}

	help := " c complete · u undo · r relapse · s submit · ↑/↓ move · q quit"
	fmt.Fprintf(&b, "\n%s\n", formatter.Dim(help))
	return b.String()
}
