package migration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonathan/flashcard-migrate/internal/discovery"
)

// Runner applies steps to the documents found under a site directory.
type Runner struct {
	SiteDir string
	Pattern string
	Out     io.Writer
	Logger  *slog.Logger
}

// NewRunner creates a Runner writing outcome lines to out.
func NewRunner(siteDir, pattern string, out io.Writer, logger *slog.Logger) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{SiteDir: siteDir, Pattern: pattern, Out: out, Logger: logger}
}

// Documents lists the documents the runner will visit, in visiting order.
func (r *Runner) Documents() ([]Document, error) {
	names, err := discovery.FindDocuments(r.SiteDir, r.Pattern)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, Document{Name: name, Path: filepath.Join(r.SiteDir, filepath.FromSlash(name))})
	}
	return docs, nil
}

// Run applies step to every document sequentially and prints one line per
// document. Per-document failures never stop the batch; only discovery
// errors are returned. Cancellation is checked between documents.
func (r *Runner) Run(ctx context.Context, step Step) (*Report, error) {
	docs, err := r.Documents()
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}

	report := NewReport(step.Name())
	r.Logger.Debug("running step", "step", step.Name(), "run_id", report.RunID, "documents", len(docs))
	if a, ok := step.(CountAnnouncer); ok && a.AnnounceCount() {
		_, _ = fmt.Fprintf(r.Out, "Found %d HTML files.\n", len(docs))
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			r.Logger.Warn("step interrupted", "step", step.Name(), "remaining_from", doc.Name)
			report.Interrupted = true
			break
		}

		outcome := step.Apply(ctx, doc)
		report.Add(outcome)
		r.Logger.Debug("document processed",
			"step", step.Name(),
			"path", doc.Name,
			"status", outcome.Status,
			"reason", outcome.Reason,
		)
		_, _ = fmt.Fprintln(r.Out, outcome.String())
	}

	report.Finish()
	return report, nil
}
