package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run add-firebase, add-srs, extract-vocab and update-refs in order",
	Long:  "Runs the four migration steps in sequence over the site. A page failing one step does not stop later steps; each step re-detects what it still has to do.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	return runSteps(cmd, firebaseStep, srsStep, extractStep, rewriteStep)
}
