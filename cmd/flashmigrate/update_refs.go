package main

import (
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/jonathan/flashcard-migrate/internal/references"
	"github.com/spf13/cobra"
)

var updateRefsCmd = &cobra.Command{
	Use:   "update-refs",
	Short: "Replace inline vocabulary scripts with a data file loader",
	Long:  "Replaces the inline vocabulary <script> block of every page that has an extracted data file with a FlashcardApp loader pointing at that file. Pages without a data file are left untouched.",
	Args:  cobra.NoArgs,
	RunE:  runUpdateRefs,
}

func init() {
	rootCmd.AddCommand(updateRefsCmd)
}

func rewriteStep(opts migration.Options) migration.Step {
	return references.NewRewriter(opts)
}

func runUpdateRefs(cmd *cobra.Command, _ []string) error {
	return runSteps(cmd, rewriteStep)
}
