// Package references replaces a page's inline vocabulary script with a
// script that loads the extracted data file.
package references

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/flashcard-migrate/internal/markers"
	"github.com/jonathan/flashcard-migrate/internal/migration"
)

// LoaderScript is the block that replaces the inline vocabulary script.
func LoaderScript(dataRef string) string {
	return fmt.Sprintf(`<script>
        // Load data from JSON
        const app = new FlashcardApp('%s');
    </script>`, dataRef)
}

// Rewrite replaces every inline vocabulary script block in content with the
// loader for dataRef. The boolean is false when no block was found.
func Rewrite(content, dataRef string) (string, bool) {
	rewritten := markers.VocabularyScriptBlock.ReplaceAllLiteralString(content, LoaderScript(dataRef))
	return rewritten, rewritten != content
}

// Rewriter is the migration step that points pages at their data files.
type Rewriter struct {
	Options migration.Options
}

// NewRewriter creates a Rewriter.
func NewRewriter(opts migration.Options) *Rewriter {
	return &Rewriter{Options: opts}
}

// Name implements migration.Step.
func (r *Rewriter) Name() string {
	return "update-refs"
}

// Apply implements migration.Step. A page without a data file is left
// byte-for-byte unchanged.
func (r *Rewriter) Apply(_ context.Context, doc migration.Document) migration.Outcome {
	if r.Options.IsEntryPoint(doc) {
		return migration.Skipped(doc, migration.ReasonEntryPoint, "Skipping %s, entry point", doc.Name)
	}

	dataRef := r.Options.DataFileRef(doc)
	if _, err := os.Stat(r.Options.DataFilePath(doc)); err != nil {
		if os.IsNotExist(err) {
			return migration.Skipped(doc, migration.ReasonDataFileMissing, "Skipping %s, JSON not found at %s", doc.Name, dataRef)
		}
		return migration.Failed(doc, migration.ReasonIOError, &RewriteError{Path: doc.Name, Message: "cannot stat data file", Cause: err}, "Failed to update %s", doc.Name)
	}

	content, err := migration.ReadDocument(doc)
	if err != nil {
		return migration.Failed(doc, migration.ReasonIOError, &RewriteError{Path: doc.Name, Message: "read failed", Cause: err}, "Failed to update %s", doc.Name)
	}

	rewritten, changed := Rewrite(content, dataRef)
	if !changed {
		return migration.Skipped(doc, migration.ReasonNoInlineBlock, "No match found in %s (already updated?)", doc.Name)
	}

	if r.Options.DryRun {
		return migration.Updated(doc, "Would update %s", doc.Name)
	}
	if err := migration.WriteDocument(doc, rewritten); err != nil {
		return migration.Failed(doc, migration.ReasonIOError, &RewriteError{Path: doc.Name, Message: "write failed", Cause: err}, "Failed to update %s", doc.Name)
	}
	return migration.Updated(doc, "Updated %s", doc.Name)
}
