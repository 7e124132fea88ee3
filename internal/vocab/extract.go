package vocab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/jonathan/flashcard-migrate/internal/markers"
	"github.com/jonathan/flashcard-migrate/internal/migration"
)

// ErrNoVocabulary is returned when a page has no inline vocabulary literal.
var ErrNoVocabulary = errors.New("no vocabulary literal found")

// ExtractLiteral returns the array literal assigned to vocabulary in content.
func ExtractLiteral(content string) (string, error) {
	m := markers.VocabularyLiteral.FindStringSubmatch(content)
	if m == nil {
		return "", ErrNoVocabulary
	}
	return m[1], nil
}

// EncodeDataFile renders entries as 4-space indented JSON. Non-ASCII text is
// written as-is.
func EncodeDataFile(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDataFile writes entries to path, creating the parent directory.
func WriteDataFile(path string, entries []Entry) error {
	data, err := EncodeDataFile(entries)
	if err != nil {
		return &WriteError{Path: path, Message: "failed to encode entries", Cause: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Message: "failed to create data directory", Cause: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Message: "failed to write data file", Cause: err}
	}
	return nil
}

// LoadDataFile reads a data file back into ordered entries.
func LoadDataFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := DecodeEntries(string(data))
	if err != nil {
		return nil, &ParseError{Message: "invalid data file " + path, Cause: err}
	}
	return entries, nil
}

// Extractor is the migration step that writes one data file per page.
type Extractor struct {
	Options migration.Options
}

// NewExtractor creates an Extractor.
func NewExtractor(opts migration.Options) *Extractor {
	return &Extractor{Options: opts}
}

// Name implements migration.Step.
func (x *Extractor) Name() string {
	return "extract-vocab"
}

// AnnounceCount implements migration.CountAnnouncer.
func (x *Extractor) AnnounceCount() bool {
	return true
}

// Apply implements migration.Step.
func (x *Extractor) Apply(_ context.Context, doc migration.Document) migration.Outcome {
	if x.Options.IsEntryPoint(doc) {
		return migration.Skipped(doc, migration.ReasonEntryPoint, "Skipping %s, entry point", doc.Name)
	}

	content, err := migration.ReadDocument(doc)
	if err != nil {
		return migration.Failed(doc, migration.ReasonIOError, err, "Failed to read %s", doc.Name)
	}

	literal, err := ExtractLiteral(content)
	if err != nil {
		return migration.Skipped(doc, migration.ReasonNoVocabulary, "No vocabulary found in %s", doc.Name)
	}

	result, err := Parse(literal)
	if err != nil {
		return migration.Failed(doc, migration.ReasonParseFailed, err, "Failed to parse %s", doc.Name)
	}

	entries := Normalize(result.Entries)
	outName := path.Base(x.Options.DataFileRef(doc))

	if x.Options.DryRun {
		return migration.Updated(doc, "Would extract %s (%d entries, %s parse)", outName, len(entries), result.Method)
	}
	if err := WriteDataFile(x.Options.DataFilePath(doc), entries); err != nil {
		return migration.Failed(doc, migration.ReasonIOError, err, "Failed to write %s", outName)
	}

	return migration.Updated(doc, "Extracted %s (%d entries, %s parse)", outName, len(entries), result.Method)
}
