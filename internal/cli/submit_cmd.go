package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
)

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Close out the day and bank your progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			if app.Engine.IsTodaySubmitted() {
				fmt.Printf("Today is already submitted. Next day in %s\n",
					formatter.Countdown(app.Engine.TimeUntilUnlock()))
				return nil
			}

			res := app.Engine.SubmitDay()
			if res == nil {
				fmt.Println("Not all scheduled habits are resolved. Complete them, or log a relapse for demons you lost to, then submit.")
				return nil
			}

			fmt.Printf("\n%s\n\n", formatter.Header(fmt.Sprintf("Day %d complete", res.DayNumber)))
			fmt.Printf("  Habits: %d/%d", res.SuccessfulCount, res.TotalCount)
			if res.RelapseCount > 0 {
				fmt.Printf("  %s", formatter.StyleRed.Render(fmt.Sprintf("(%d relapse)", res.RelapseCount)))
			}
			fmt.Println()
			if res.IsPerfect {
				fmt.Printf("  %s\n", formatter.StyleGreen.Render("PERFECT DAY"))
			}
			fmt.Printf("  XP earned: %s\n", formatter.XPDelta(res.XPEarned))
			fmt.Printf("  Streak: %s\n", formatter.StreakFlame(res.NewStreak))
			for _, a := range res.NewAchievements {
				fmt.Printf("  Unlocked %s\n", formatter.AchievementLabel(a))
			}
			fmt.Printf("\nNext day in %s\n", formatter.Countdown(app.Engine.TimeUntilUnlock()))

			app.Engine.MarkCelebrationShown()
			return flushAndReport(app)
		},
	}
}
