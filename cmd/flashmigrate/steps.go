package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/flashcard-migrate/internal/config"
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/jonathan/flashcard-migrate/internal/observability"
	"github.com/spf13/cobra"
)

// resolveConfig merges, in priority order: explicitly set flags, the config
// file, the environment, and the built-in defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if flagConfigPath != "" {
		loaded, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.SiteDir = flagDir
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Changed("pattern") {
		cfg.Pattern = flagPattern
	}
	if flags.Changed("entry-point") {
		cfg.EntryPoint = flagEntryPoint
	}
	if flags.Changed("report") {
		cfg.Report = flagReport
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = flagDryRun
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// stepFactory builds a step from the resolved options.
type stepFactory func(opts migration.Options) migration.Step

// runSteps resolves configuration and applies each step in order over the
// whole site. Per-document failures are reported, never returned.
func runSteps(cmd *cobra.Command, factories ...stepFactory) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Verbose)
	logger.Debug("resolved configuration",
		"site_dir", cfg.SiteDir,
		"data_dir", cfg.DataDir,
		"pattern", cfg.Pattern,
		"entry_point", cfg.EntryPoint,
		"dry_run", cfg.DryRun,
	)

	out := cmd.OutOrStdout()
	runner := migration.NewRunner(cfg.SiteDir, cfg.Pattern, out, logger)
	printer := observability.NewPrinter(out)
	opts := cfg.Options()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]*migration.Report, 0, len(factories))
	for _, factory := range factories {
		step := factory(opts)
		if len(factories) > 1 {
			_, _ = fmt.Fprintf(out, "== %s\n", step.Name())
		}

		report, err := runner.Run(ctx, step)
		if err != nil {
			return err
		}
		reports = append(reports, report)
		if cfg.Verbose || len(factories) > 1 {
			printer.PrintReport(report)
		}
		if report.Interrupted {
			logger.Warn("migration interrupted", "step", step.Name())
			break
		}
	}

	return writeReport(cfg.Report, reports, logger)
}

func writeReport(path string, reports []*migration.Report, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	if err := migration.WriteReports(path, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("report written", "path", path)
	return nil
}
