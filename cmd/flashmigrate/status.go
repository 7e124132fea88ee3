package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/flashcard-migrate/internal/audit"
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/jonathan/flashcard-migrate/internal/observability"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how far each page has been migrated",
	Long:  "Inspects every page without modifying it: injected scripts, whether an inline vocabulary remains, and whether the page loads an existing data file.",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print statuses as JSON instead of a summary box")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Verbose)
	out := cmd.OutOrStdout()
	runner := migration.NewRunner(cfg.SiteDir, cfg.Pattern, out, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	statuses, err := audit.Site(ctx, runner, cfg.Options())
	if err != nil {
		return err
	}

	if statusJSON || cfg.Report != "" {
		jsonBytes, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statuses: %w", err)
		}
		if cfg.Report != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.Report), 0755); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
			if err := os.WriteFile(cfg.Report, jsonBytes, 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
		if statusJSON {
			_, _ = fmt.Fprintln(out, string(jsonBytes))
			return nil
		}
	}

	observability.NewPrinter(out).PrintStatus(statuses)
	return nil
}
