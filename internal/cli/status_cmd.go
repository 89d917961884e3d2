package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"habitquest/internal/bridge"
	"habitquest/internal/cli/formatter"
	"habitquest/internal/domain"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show profile, level and program progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			ov := app.Engine.Overview()
			if !ov.HasOnboarded {
				fmt.Println("No profile yet. Run 'habitquest onboard' to begin.")
				return nil
			}

			into, needed := app.Engine.LevelProgress()

			var b strings.Builder
			fmt.Fprintf(&b, "%s  %s  %s\n\n",
				formatter.Bold(ov.Username),
				formatter.StylePurple.Render(string(ov.Archetype)),
				formatter.Dim(string(ov.Difficulty)))
			fmt.Fprintf(&b, "%s\n", formatter.LevelBar(ov.Level, into, needed, 20))
			fmt.Fprintf(&b, "Rank: %s   XP: %d\n\n",
				formatter.StyleHeader.Render(ov.Rank.Name), ov.XP)

			phaseStyle := formatter.PhaseStyle(ov.Phase)
			fmt.Fprintf(&b, "%s\n", formatter.ProgramBar(ov.CurrentDay, 22))
			fmt.Fprintf(&b, "Phase: %s\n\n", phaseStyle.Render(ov.Phase.Name))

			fmt.Fprintf(&b, "Streak: %s   Longest: %d   Perfect days: %d\n",
				formatter.StreakFlame(ov.CurrentStreak), ov.LongestStreak, ov.PerfectDays)

			if ov.Submitted {
				fmt.Fprintf(&b, "\n%s  next day in %s\n",
					formatter.StyleGreen.Render("Day submitted."),
					formatter.Countdown(app.Engine.TimeUntilUnlock()))
			}

			if unlocked := achievementList(app.Engine.Achievements()); len(unlocked) > 0 {
				fmt.Fprintf(&b, "\n%s\n", formatter.Dim("Achievements:"))
				for _, a := range unlocked {
					fmt.Fprintf(&b, "  %s\n", formatter.AchievementLabel(a))
				}
			}

			fmt.Fprint(&b, syncLine(app))

			fmt.Print(formatter.RenderBox("Status", strings.TrimRight(b.String(), "\n")))
			fmt.Println()
			return nil
		},
	}
}

// achievementList returns unlocked achievements in a stable display order.
func achievementList(unlocked map[domain.Achievement]bool) []domain.Achievement {
	order := []domain.Achievement{
		domain.AchFirstBlood, domain.AchWeekWarrior, domain.AchTwoWeeks,
		domain.AchMonthly, domain.AchLockedIn, domain.AchForged,
		domain.AchCenturion, domain.AchPerfectWeek, domain.AchPerfectMonth,
	}
	var out []domain.Achievement
	for _, a := range order {
		if unlocked[a] {
			out = append(out, a)
		}
	}
	return out
}

func syncLine(app *App) string {
	state, lastErr := app.Bridge.Status()
	switch state {
	case bridge.StateLocalOnly:
		return "\n" + formatter.Dim("Sync: local only") + "\n"
	case bridge.StateError:
		msg := "sync failed"
		if lastErr != nil {
			msg = lastErr.Error()
		}
		return "\n" + formatter.StyleYellow.Render("Sync: offline ("+msg+")") + "\n"
	case bridge.StateSyncing:
		return "\n" + formatter.Dim("Sync: in progress") + "\n"
	default:
		return ""
	}
}

// flushAndReport saves and prints a warning when the hosted store could not
// be reached. Local persistence failures are real errors.
func flushAndReport(app *App) error {
	if err := app.save(context.Background()); err != nil {
		return err
	}
	if state, lastErr := app.Bridge.Status(); state == bridge.StateError && lastErr != nil {
		fmt.Println(formatter.Dim("(offline: changes saved locally, will sync later)"))
	}
	return nil
}
