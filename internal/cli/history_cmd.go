package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show submitted days, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			history := app.Engine.History()
			if len(history) == 0 {
				fmt.Println("No submitted days yet.")
				return nil
			}
			if days > 0 && len(history) > days {
				history = history[len(history)-days:]
			}

			now := time.Now()
			headers := []string{"DAY", "DATE", "HABITS", "RELAPSES", "XP", ""}
			rows := make([][]string, 0, len(history))
			for i := len(history) - 1; i >= 0; i-- {
				e := history[i]
				perfect := ""
				if e.IsPerfect {
					perfect = formatter.StyleGreen.Render("★ perfect")
				}
				relapses := formatter.Dim("0")
				if e.RelapseCount > 0 {
					relapses = formatter.StyleRed.Render(fmt.Sprintf("%d", e.RelapseCount))
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", e.DayNumber),
					formatter.HumanDate(e.Date, now),
					fmt.Sprintf("%d/%d", e.SuccessfulCount, e.TotalCount),
					relapses,
					formatter.XPDelta(e.XPEarned),
					perfect,
				})
			}

			fmt.Print(formatter.RenderBox("History", formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "Number of most recent days to show (0 = all)")
	return cmd
}
