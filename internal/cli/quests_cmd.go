package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
)

func newQuestsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show today's side quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			quests := app.Engine.SideQuests()
			if len(quests) == 0 {
				fmt.Println("No side quests today. Finish onboarding first.")
				return nil
			}

			headers := []string{"ID", "QUEST", "XP", "STATUS"}
			rows := make([][]string, 0, len(quests))
			for _, q := range quests {
				status := formatter.StyleYellow.Render("○ Open")
				if q.Completed {
					status = formatter.StyleGreen.Render("✔ Done")
				}
				rows = append(rows, []string{
					formatter.Dim(q.ID),
					q.Name,
					fmt.Sprintf("%d", q.XP),
					status,
				})
			}

			fmt.Print(formatter.RenderBox("Side Quests", formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete ID",
		Short: "Complete a side quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.refresh()

			xp := app.Engine.CompleteSideQuest(args[0])
			if xp == 0 {
				fmt.Printf("Quest %q is not in today's assignment or is already done.\n", args[0])
				return nil
			}
			fmt.Printf("%s Quest complete  %s\n",
				formatter.StyleGreen.Render("✔"), formatter.XPDelta(xp))
			return flushAndReport(app)
		},
	})

	return cmd
}
