// Package audit reports how far each page of the site has been migrated,
// without modifying anything.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/flashcard-migrate/internal/markers"
	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/jonathan/flashcard-migrate/internal/vocab"
)

// State is the migration state of a page.
type State string

const (
	StateEntryPoint   State = "entry_point"
	StateNoVocabulary State = "no_vocabulary"
	StateUntouched    State = "untouched" // inline vocabulary, no data file yet
	StateExtracted    State = "extracted" // inline vocabulary and data file
	StateRewritten    State = "rewritten" // loads its data file
	StateBroken       State = "broken"    // loads a data file that is missing
	StateUnreadable   State = "unreadable"
)

// PageStatus describes one page.
type PageStatus struct {
	Path             string `json:"path"`
	State            State  `json:"state"`
	HasAppScript     bool   `json:"has_app_script"`
	HasFirebase      bool   `json:"has_firebase"`
	HasSRS           bool   `json:"has_srs"`
	InlineVocabulary bool   `json:"inline_vocabulary"`
	DataRef          string `json:"data_ref,omitempty"`
	DataFileExists   bool   `json:"data_file_exists"`
	DataEntries      int    `json:"data_entries"`
	Error            string `json:"error,omitempty"`
}

// Inspect parses content and classifies the page.
func Inspect(content string, opts migration.Options, doc migration.Document) (*PageStatus, error) {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, &AuditError{Path: doc.Name, Message: "failed to parse HTML", Cause: err}
	}

	status := &PageStatus{Path: doc.Name, DataEntries: -1}

	page.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		switch {
		case src == markers.AppScriptSrc.String():
			status.HasAppScript = true
		case strings.Contains(src, markers.FirebaseMarker.String()):
			status.HasFirebase = true
		case src == markers.SRSMarker.String():
			status.HasSRS = true
		}
	})

	page.Find("script:not([src])").Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		if markers.VocabularyAssignment.In(body) {
			status.InlineVocabulary = true
		}
		if m := markers.DataReference.FindStringSubmatch(body); m != nil && status.DataRef == "" {
			status.DataRef = m[1]
		}
	})

	dataPath := opts.DataFilePath(doc)
	if _, err := os.Stat(dataPath); err == nil {
		status.DataFileExists = true
		if entries, err := vocab.LoadDataFile(dataPath); err == nil {
			status.DataEntries = len(entries)
		}
	}

	status.State = classify(status, opts.IsEntryPoint(doc))
	return status, nil
}

func classify(s *PageStatus, entryPoint bool) State {
	switch {
	case entryPoint:
		return StateEntryPoint
	case s.InlineVocabulary && s.DataFileExists:
		return StateExtracted
	case s.InlineVocabulary:
		return StateUntouched
	case s.DataRef != "" && s.DataFileExists:
		return StateRewritten
	case s.DataRef != "":
		return StateBroken
	default:
		return StateNoVocabulary
	}
}

// Site inspects every document the runner would visit. A page that cannot be
// read or parsed is recorded as unreadable and the audit continues.
func Site(ctx context.Context, runner *migration.Runner, opts migration.Options) ([]PageStatus, error) {
	docs, err := runner.Documents()
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}
	return inspectAll(ctx, docs, opts, runner.Logger)
}

func inspectAll(ctx context.Context, docs []migration.Document, opts migration.Options, logger *slog.Logger) ([]PageStatus, error) {
	statuses := make([]PageStatus, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return statuses, err
		}
		status, err := inspectDocument(opts, doc)
		if err != nil {
			logger.Warn("page not inspected", "path", doc.Name, "error", err)
			status = &PageStatus{Path: doc.Name, State: StateUnreadable, DataEntries: -1, Error: err.Error()}
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}

func inspectDocument(opts migration.Options, doc migration.Document) (*PageStatus, error) {
	content, err := migration.ReadDocument(doc)
	if err != nil {
		return nil, &AuditError{Path: doc.Name, Message: "failed to read page", Cause: err}
	}
	return Inspect(content, opts, doc)
}

// Summary counts pages per state.
func Summary(statuses []PageStatus) map[State]int {
	counts := make(map[State]int)
	for _, s := range statuses {
		counts[s.State]++
	}
	return counts
}
