// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/flashcard-migrate/internal/audit"
	"github.com/jonathan/flashcard-migrate/internal/migration"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// NewLogger returns a text logger on stderr. Debug records are only emitted
// when verbose is set.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Printer handles formatted summary output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs the counters of a step report and lists its failures.
func (p *Printer) PrintReport(report *migration.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Updated:  %d\n", report.Updated))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", report.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:   %d\n", report.Failed))
	if report.Interrupted {
		sb.WriteString("Interrupted before all documents were processed\n")
	}

	var failures []migration.Outcome
	for _, o := range report.Outcomes {
		if o.Status == migration.StatusFailed {
			failures = append(failures, o)
		}
	}
	if len(failures) > 0 {
		sb.WriteString("\nFailures:\n")
		count := min(len(failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", failures[i].Path, failures[i].Reason))
		}
		if len(failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(failures)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(report.Step), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatus outputs one line per page followed by per-state totals.
func (p *Printer) PrintStatus(statuses []audit.PageStatus) {
	if len(statuses) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range statuses {
		flags := make([]string, 0, 3)
		if s.HasFirebase {
			flags = append(flags, "firebase")
		}
		if s.HasSRS {
			flags = append(flags, "srs")
		}
		if s.DataEntries >= 0 {
			flags = append(flags, fmt.Sprintf("%d cards", s.DataEntries))
		}
		sb.WriteString(fmt.Sprintf("%-20s %-13s %s\n", s.Path, s.State, strings.Join(flags, ",")))
	}

	counts := audit.Summary(statuses)
	sb.WriteString("\n")
	for _, state := range []audit.State{
		audit.StateUntouched, audit.StateExtracted, audit.StateRewritten,
		audit.StateBroken, audit.StateNoVocabulary, audit.StateEntryPoint,
		audit.StateUnreadable,
	} {
		if counts[state] > 0 {
			sb.WriteString(fmt.Sprintf("%s: %d\n", state, counts[state]))
		}
	}

	p.printBox("SITE STATUS", strings.TrimSuffix(sb.String(), "\n"))
}
