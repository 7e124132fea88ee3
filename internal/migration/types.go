// Package migration runs a single transformation step over every document of
// a static site and collects a per-document outcome for each.
package migration

import (
	"context"
	"fmt"
)

// Status is the coarse result of applying a step to one document.
type Status string

const (
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Reason explains why a document was skipped or failed.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonMarkerPresent   Reason = "marker_present"
	ReasonAnchorMissing   Reason = "anchor_missing"
	ReasonEntryPoint      Reason = "entry_point"
	ReasonNoVocabulary    Reason = "no_vocabulary"
	ReasonParseFailed     Reason = "parse_failed"
	ReasonDataFileMissing Reason = "data_file_missing"
	ReasonNoInlineBlock   Reason = "no_inline_block"
	ReasonIOError         Reason = "io_error"
)

// Document is one HTML file of the site.
type Document struct {
	// Name is the slash-separated path relative to the site directory.
	Name string
	// Path is the filesystem path used for reading and writing.
	Path string
}

// Outcome is the result of applying a step to a single document.
type Outcome struct {
	Path    string `json:"path"`
	Status  Status `json:"status"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	// Error mirrors Err for the JSON report.
	Error string `json:"error,omitempty"`
}

// String renders the outcome as a single log line.
func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: %v", o.Message, o.Err)
	}
	return o.Message
}

// Updated builds a successful outcome.
func Updated(doc Document, format string, args ...any) Outcome {
	return Outcome{Path: doc.Name, Status: StatusUpdated, Message: fmt.Sprintf(format, args...)}
}

// Skipped builds a no-op outcome.
func Skipped(doc Document, reason Reason, format string, args ...any) Outcome {
	return Outcome{Path: doc.Name, Status: StatusSkipped, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Failed builds a per-document failure. The batch continues.
func Failed(doc Document, reason Reason, err error, format string, args ...any) Outcome {
	o := Outcome{Path: doc.Name, Status: StatusFailed, Reason: reason, Message: fmt.Sprintf(format, args...), Err: err}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Step is one transformation applied independently to each document.
type Step interface {
	Name() string
	Apply(ctx context.Context, doc Document) Outcome
}

// CountAnnouncer is implemented by steps that print how many documents were
// found before processing them.
type CountAnnouncer interface {
	AnnounceCount() bool
}

// Options are shared by every step.
type Options struct {
	// SiteDir is the directory holding the HTML documents.
	SiteDir string
	// DataDir is relative to SiteDir and slash-separated.
	DataDir string
	// EntryPoint is the base name of the document the data steps never touch.
	EntryPoint string
	// DryRun computes outcomes without writing anything.
	DryRun bool
}
