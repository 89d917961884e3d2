package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"habitquest/internal/bridge"
	"habitquest/internal/cli"
	"habitquest/internal/config"
	"habitquest/internal/domain"
	"habitquest/internal/engine"
	"habitquest/internal/localstore"
	"habitquest/internal/remote"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	userID := cfg.UserID
	if userID == "" {
		userID = "default"
	}

	local, err := localstore.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	defer local.Close()

	var remoteStore bridge.RemoteStore
	if cfg.RemoteConfigured() {
		var observer remote.Observer = remote.NoopObserver{}
		if cfg.LogRemoteCalls {
			observer = remote.NewLogObserver(os.Stderr)
		}
		remoteStore = remote.NewClient(remote.Config{
			BaseURL:    cfg.Remote.BaseURL,
			APIKey:     cfg.Remote.APIKey,
			TimeoutMs:  cfg.Remote.TimeoutMs,
			MaxRetries: cfg.Remote.MaxRetries,
		}, observer)
	}

	// Every engine mutation schedules a coalesced background flush; commands
	// that need durability before exiting still flush synchronously on top.
	var b *bridge.Bridge
	eng := engine.New(domain.NewProfile(userID), engine.WithOnChange(func() {
		if b != nil {
			b.Flush(context.Background())
		}
	}))
	b = bridge.New(eng, local, remoteStore, userID)

	firstRun, err := b.Hydrate(context.Background())
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	// Detect a day boundary passed while the app was closed, then roll the
	// daily side quests for the (possibly new) date.
	eng.CheckAndResetDay()
	eng.RefreshSideQuests()

	app := &cli.App{
		Engine:   eng,
		Bridge:   b,
		FirstRun: firstRun,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	defer b.Wait()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
