// Package injection inserts script tags in front of the application script
// of each page. Injection is idempotent: a page that already carries the
// injector's marker is left alone.
package injection

import (
	"context"
	"strings"

	"github.com/jonathan/flashcard-migrate/internal/markers"
	"github.com/jonathan/flashcard-migrate/internal/migration"
)

// Injector inserts a fixed block of lines before markers.AppScriptTag.
type Injector struct {
	// StepName identifies the injector in reports, e.g. "add-srs".
	StepName string
	// Label is the human name used in skip messages, e.g. "SRS".
	Label string
	// Marker is present once the injection has been applied.
	Marker markers.Marker
	// Lines are inserted one per line, each indented like the anchor.
	Lines []string

	DryRun bool
}

// Firebase returns the injector for the Firebase SDK bundle.
func Firebase(dryRun bool) *Injector {
	return &Injector{
		StepName: "add-firebase",
		Label:    "Firebase",
		Marker:   markers.FirebaseMarker,
		Lines: []string{
			"<!-- Firebase SDK -->",
			`<script src="https://www.gstatic.com/firebasejs/8.10.1/firebase-app.js"></script>`,
			`<script src="https://www.gstatic.com/firebasejs/8.10.1/firebase-auth.js"></script>`,
			`<script src="https://www.gstatic.com/firebasejs/8.10.1/firebase-firestore.js"></script>`,
			`<script src="assets/js/firebase-config.js"></script>`,
			`<script src="assets/js/firebase-manager.js"></script>`,
		},
		DryRun: dryRun,
	}
}

// SRS returns the injector for the spaced-repetition script.
func SRS(dryRun bool) *Injector {
	return &Injector{
		StepName: "add-srs",
		Label:    "SRS",
		Marker:   markers.SRSMarker,
		Lines:    []string{`<script src="` + markers.SRSMarker.String() + `"></script>`},
		DryRun:   dryRun,
	}
}

// Name implements migration.Step.
func (in *Injector) Name() string {
	return in.StepName
}

// snippet renders Lines so that each lands on its own line at the anchor's
// indentation. The anchor's existing indentation is reused for the first line.
func (in *Injector) snippet() string {
	var sb strings.Builder
	for _, line := range in.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(markers.Indent)
	}
	return sb.String()
}

// Inject returns content with the snippet inserted before every anchor tag.
// The reason is ReasonMarkerPresent or ReasonAnchorMissing when content is
// returned unchanged, ReasonNone otherwise.
func (in *Injector) Inject(content string) (string, migration.Reason) {
	if in.Marker.In(content) {
		return content, migration.ReasonMarkerPresent
	}
	if !markers.AppScriptTag.In(content) {
		return content, migration.ReasonAnchorMissing
	}

	anchor := markers.AppScriptTag.String()
	return strings.ReplaceAll(content, anchor, in.snippet()+anchor), migration.ReasonNone
}

// Apply implements migration.Step.
func (in *Injector) Apply(_ context.Context, doc migration.Document) migration.Outcome {
	content, err := migration.ReadDocument(doc)
	if err != nil {
		return migration.Failed(doc, migration.ReasonIOError, &InjectError{Path: doc.Name, Message: "read failed", Cause: err}, "Failed to update %s", doc.Name)
	}

	updated, reason := in.Inject(content)
	switch reason {
	case migration.ReasonMarkerPresent:
		return migration.Skipped(doc, reason, "Skipping %s, already has %s.", doc.Name, in.Label)
	case migration.ReasonAnchorMissing:
		return migration.Skipped(doc, reason, "Could not find app.js script tag in %s", doc.Name)
	}

	if in.DryRun {
		return migration.Updated(doc, "Would update %s", doc.Name)
	}
	if err := migration.WriteDocument(doc, updated); err != nil {
		return migration.Failed(doc, migration.ReasonIOError, &InjectError{Path: doc.Name, Message: "write failed", Cause: err}, "Failed to update %s", doc.Name)
	}
	return migration.Updated(doc, "Updated %s", doc.Name)
}
