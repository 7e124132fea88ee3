package main

import (
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/jonathan/flashcard-migrate/internal/vocab"
	"github.com/spf13/cobra"
)

var extractVocabCmd = &cobra.Command{
	Use:   "extract-vocab",
	Short: "Extract inline vocabulary arrays into JSON data files",
	Long: `Finds "const vocabulary = [...]" in every page except the entry point, parses it (quoting bare keys if needed),
lower-cases every field name and writes <data-dir>/<page>.json. Pages whose literal cannot be parsed are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runExtractVocab,
}

func init() {
	rootCmd.AddCommand(extractVocabCmd)
}

func extractStep(opts migration.Options) migration.Step {
	return vocab.NewExtractor(opts)
}

func runExtractVocab(cmd *cobra.Command, _ []string) error {
	return runSteps(cmd, extractStep)
}
