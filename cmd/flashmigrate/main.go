// Package main provides the entry point for the flashcard site migration CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashmigrate",
	Short: "Flashcard site migration tool",
	Long: `flashmigrate moves a static flashcard site from inline vocabulary arrays to external JSON data files.

Each subcommand is a single pass over the site's HTML pages and prints one line per page. Run them in order:
add-firebase -> add-srs -> extract-vocab -> update-refs, or use "migrate" to run all four.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfigPath string
	flagDir        string
	flagDataDir    string
	flagPattern    string
	flagEntryPoint string
	flagReport     string
	flagDryRun     bool
	flagVerbose    bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVarP(&flagDir, "dir", "d", "", "Site directory holding the HTML pages (default \".\")")
	pf.StringVar(&flagDataDir, "data-dir", "", "Data file directory relative to the site (default \"assets/data\")")
	pf.StringVar(&flagPattern, "pattern", "", "Glob selecting pages relative to the site (default \"*.html\")")
	pf.StringVar(&flagEntryPoint, "entry-point", "", "Page never touched by extract-vocab and update-refs (default \"index.html\")")
	pf.StringVar(&flagReport, "report", "", "Write a JSON report of every outcome to this path")
	pf.BoolVarP(&flagDryRun, "dry-run", "n", false, "Report what would change without writing files")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug logging to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
