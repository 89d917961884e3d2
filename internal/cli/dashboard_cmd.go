package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive tracking screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the dashboard needs an interactive terminal")
			}

			app.refresh()

			p := tea.NewProgram(newDashboardModel(app))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running dashboard: %w", err)
			}

			// A background flush may still be in flight from the last action.
			app.Bridge.Wait()
			return nil
		},
	}
}
