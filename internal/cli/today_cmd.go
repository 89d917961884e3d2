package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List today's scheduled habits and their state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			habits := app.Engine.Habits()
			if len(habits) == 0 {
				fmt.Println("No habits yet. Run 'habitquest onboard' to begin.")
				return nil
			}

			scheduled := make(map[string]bool)
			for _, h := range app.Engine.ScheduledToday() {
				scheduled[h.ID] = true
			}

			headers := []string{"ID", "HABIT", "TYPE", "SCHEDULE", "STREAK", "TODAY"}
			rows := make([][]string, 0, len(habits))
			for _, h := range habits {
				rows = append(rows, []string{
					formatter.TruncID(h.ID),
					h.Name,
					formatter.KindBadge(h.Kind),
					formatter.Dim(formatter.FrequencyLabel(h.Frequency)),
					formatter.StreakFlame(h.Streak),
					formatter.HabitPill(h, scheduled[h.ID]),
				})
			}

			fmt.Print(formatter.RenderBox("Today", formatter.RenderTable(headers, rows)))
			fmt.Println()

			if app.Engine.IsTodaySubmitted() {
				fmt.Printf("Day submitted. Next day in %s\n",
					formatter.Countdown(app.Engine.TimeUntilUnlock()))
			}
			return nil
		},
	}
}
