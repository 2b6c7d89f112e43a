package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrandonKowalski/navigator/internal/scenario"
	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/pokedex"
	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run <scenario-file>",
	Aliases: []string{"r"},
	Short:   "Play a navigation scenario",
	Long: `Play a YAML or TOML navigation scenario against a fresh navigator and
print the back stack after every step. The command fails when any step's
expectation is not met.

With --watch the scenario is replayed on a new navigator every time the file
changes, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("watch", "w", false, "replay the scenario when the file changes")
	runCmd.Flags().Duration("debounce", 0, "coalescing window for file changes (default 200ms)")
	runCmd.Flags().String("language", "", "language for pokemon display strings (default en)")
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	catalog := pokedex.StarterCatalog()
	formatter := model.NewFormatter(cfg.Scenario.Language)
	logger := navigator.GetLogger()

	play := func(ctx context.Context, path string) error {
		sc, err := scenario.Load(path)
		if err != nil {
			return err
		}
		report, err := scenario.Play(ctx, sc, catalog, logger)
		if report != nil {
			printReport(cmd.OutOrStdout(), formatter, catalog, report)
		}
		if err != nil {
			return err
		}
		return report.Err()
	}

	err := play(ctx, path)
	if !cfg.Scenario.Watch {
		return err
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}

	w, err := scenario.NewWatcher(path, cfg.Scenario.Debounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching scenario", "path", w.Path(), "debounce", cfg.Scenario.Debounce)
	err = w.Run(ctx, func(ctx context.Context, path string) error {
		fmt.Fprintln(cmd.OutOrStdout())
		return play(ctx, path)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
