// Package cli implements the habitquest command surface: one-shot cobra
// commands for scripted use and a bubbletea dashboard for daily tracking.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"habitquest/internal/bridge"
	"habitquest/internal/engine"
)

// App holds the wired dependencies shared by all commands.
type App struct {
	Engine *engine.Engine
	Bridge *bridge.Bridge

	// FirstRun is set by startup hydration when no stored profile exists.
	FirstRun bool

	// IsInteractive reports whether stdin is attached to a terminal; wizard
	// and dashboard surfaces refuse to start without one.
	IsInteractive func() bool
}

// refresh runs the maintenance every command performs on entry: detect a
// passed day boundary and roll the daily side quests.
func (a *App) refresh() {
	a.Engine.CheckAndResetDay()
	a.Engine.RefreshSideQuests()
}

// save flushes the engine state to both persistence tiers.
func (a *App) save(ctx context.Context) error {
	return a.Bridge.FlushNow(ctx)
}

// NewRootCmd creates the top-level "habitquest" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "habitquest",
		Short: "66-day habit transformation tracker",
	}

	// Accept underscore spellings of flag names.
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newOnboardCmd(app),
		newStatusCmd(app),
		newTodayCmd(app),
		newCompleteCmd(app),
		newUndoCmd(app),
		newRelapseCmd(app),
		newSubmitCmd(app),
		newHabitCmd(app),
		newQuestsCmd(app),
		newHistoryCmd(app),
		newDashboardCmd(app),
		newResetCmd(app),
	)

	return root
}
