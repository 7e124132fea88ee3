package main

import (
	"github.com/jonathan/flashcard-migrate/internal/injection"
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/spf13/cobra"
)

var addFirebaseCmd = &cobra.Command{
	Use:   "add-firebase",
	Short: "Insert the Firebase SDK scripts before app.js",
	Long:  "Inserts the Firebase SDK bundle (app, auth, firestore, config, manager) immediately before the app.js script tag of every page. Pages that already load firebase-app.js are skipped.",
	Args:  cobra.NoArgs,
	RunE:  runAddFirebase,
}

func init() {
	rootCmd.AddCommand(addFirebaseCmd)
}

func firebaseStep(opts migration.Options) migration.Step {
	return injection.Firebase(opts.DryRun)
}

func runAddFirebase(cmd *cobra.Command, _ []string) error {
	return runSteps(cmd, firebaseStep)
}
