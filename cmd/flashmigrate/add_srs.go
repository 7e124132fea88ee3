package main

import (
	"github.com/jonathan/flashcard-migrate/internal/injection"
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/spf13/cobra"
)

var addSRSCmd = &cobra.Command{
	Use:   "add-srs",
	Short: "Insert the spaced-repetition script before app.js",
	Long:  "Inserts assets/js/srs.js immediately before the app.js script tag of every page. Pages that already reference srs.js are skipped.",
	Args:  cobra.NoArgs,
	RunE:  runAddSRS,
}

func init() {
	rootCmd.AddCommand(addSRSCmd)
}

func srsStep(opts migration.Options) migration.Step {
	return injection.SRS(opts.DryRun)
}

func runAddSRS(cmd *cobra.Command, _ []string) error {
	return runSteps(cmd, srsStep)
}
