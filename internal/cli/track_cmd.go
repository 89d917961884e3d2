package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
)

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete HABIT",
		Short: "Mark a habit done for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			h, err := resolveHabit(app.Engine.Habits(), args[0])
			if err != nil {
				return err
			}

			xp := app.Engine.CompleteHabit(h.ID)
			if xp == 0 {
				fmt.Printf("%q not completable right now (already done, not scheduled today, or the day is submitted).\n", h.Name)
				return nil
			}

			fmt.Printf("%s %s  %s\n",
				formatter.StyleGreen.Render("✔"), h.Name, formatter.XPDelta(xp))
			return flushAndReport(app)
		},
	}
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo HABIT",
		Short: "Take back a habit completed today",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			h, err := resolveHabit(app.Engine.Habits(), args[0])
			if err != nil {
				return err
			}

			xp := app.Engine.UncompleteHabit(h.ID)
			if xp == 0 {
				fmt.Printf("Nothing to undo for %q.\n", h.Name)
				return nil
			}

			fmt.Printf("Undid %q  %s\n", h.Name, formatter.XPDelta(-xp))
			return flushAndReport(app)
		},
		Args: cobra.ExactArgs(1),
	}
}

func newRelapseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "relapse HABIT",
		Short: "Log a demon relapse honestly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			h, err := resolveHabit(app.Engine.Habits(), args[0])
			if err != nil {
				return err
			}

			res := app.Engine.RelapseHabit(h.ID)
			if res == nil {
				fmt.Printf("Cannot log a relapse for %q (not a demon, already terminal today, or the day is submitted).\n", h.Name)
				return nil
			}

			fmt.Printf("%s %s\n", formatter.StyleRed.Render("✖"), h.Name)
			if res.StreakLost > 0 {
				fmt.Printf("  Streak lost: %d days  %s\n", res.StreakLost, formatter.XPDelta(-res.XPLost))
			}
			fmt.Printf("  Honesty reward: %s\n", formatter.XPDelta(res.XPGained))
			fmt.Printf("  %s\n", formatter.Dim(fmt.Sprintf("Longest streak preserved: %d days", res.LongestStreak)))
			return flushAndReport(app)
		},
	}
}
