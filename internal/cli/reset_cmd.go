package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset deletes all progress everywhere; pass --force to confirm")
			}

			ctx := context.Background()
			// Stored copies go first: if the purge fails the profile survives
			// intact and the reset can be retried.
			if err := app.Bridge.Purge(ctx); err != nil {
				return fmt.Errorf("purging stored progress: %w", err)
			}
			app.Engine.Reset()

			fmt.Println("Progress wiped. Run 'habitquest onboard' to start again.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm the irreversible reset")
	return cmd
}
