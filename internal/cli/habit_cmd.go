package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
	"habitquest/internal/domain"
)

func newHabitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage the habit roster",
	}

	cmd.AddCommand(
		newHabitAddCmd(app),
		newHabitRemoveCmd(app),
		newHabitListCmd(app),
	)

	return cmd
}

func newHabitAddCmd(app *App) *cobra.Command {
	var kind, freq string
	var xp int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			if kind != string(domain.KindDemon) && kind != string(domain.KindPower) {
				return fmt.Errorf("--type must be %q or %q", domain.KindDemon, domain.KindPower)
			}
			if !domain.ValidFrequencies[freq] {
				return fmt.Errorf("--frequency must be one of: daily, weekdays, weekends, 3x_week, 5x_week")
			}

			id := app.Engine.AddHabit(args[0], domain.HabitKind(kind), xp, domain.Frequency(freq))
			if id == "" {
				return fmt.Errorf("invalid habit: name must be non-empty and --xp positive")
			}

			fmt.Printf("Added %s %q worth %d XP (%s)\n", kind, args[0], xp, id[:8])
			return flushAndReport(app)
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(domain.KindPower), "Habit type: demon (eliminating) or power (building)")
	cmd.Flags().IntVar(&xp, "xp", 25, "XP awarded per completion")
	cmd.Flags().StringVar(&freq, "frequency", string(domain.FreqDaily), "Schedule: daily, weekdays, weekends, 3x_week, 5x_week")

	return cmd
}

func newHabitRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove HABIT",
		Short: "Remove a habit permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			h, err := resolveHabit(app.Engine.Habits(), args[0])
			if err != nil {
				return err
			}
			if !app.Engine.RemoveHabit(h.ID) {
				return fmt.Errorf("habit %q not found", args[0])
			}

			fmt.Printf("Removed %q. Its submitted-day history is kept.\n", h.Name)
			return flushAndReport(app)
		},
	}
}

func newHabitListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			habits := app.Engine.Habits()
			if len(habits) == 0 {
				fmt.Println("No habits yet.")
				return nil
			}

			headers := []string{"ID", "HABIT", "TYPE", "XP", "SCHEDULE", "STREAK", "BEST", "RELAPSES"}
			rows := make([][]string, 0, len(habits))
			for _, h := range habits {
				relapses := "-"
				if h.IsDemon() {
					relapses = fmt.Sprintf("%d", h.Relapses)
				}
				rows = append(rows, []string{
					formatter.TruncID(h.ID),
					h.Name,
					formatter.KindBadge(h.Kind),
					fmt.Sprintf("%d", h.XP),
					formatter.Dim(formatter.FrequencyLabel(h.Frequency)),
					fmt.Sprintf("%d", h.Streak),
					fmt.Sprintf("%d", h.LongestStreak),
					relapses,
				})
			}

			fmt.Print(formatter.RenderBox("Habits", formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}
}
