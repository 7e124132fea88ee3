package migration

import (
	"path"
	"path/filepath"

	"github.com/jonathan/flashcard-migrate/internal/discovery"
)

// DefaultDataDir holds the extracted vocabulary files, relative to the site.
const DefaultDataDir = "assets/data"

func (o Options) dataDir() string {
	if o.DataDir == "" {
		return DefaultDataDir
	}
	return path.Clean(filepath.ToSlash(o.DataDir))
}

// IsEntryPoint reports whether doc is the page the data steps skip.
func (o Options) IsEntryPoint(doc Document) bool {
	return discovery.IsEntryPoint(doc.Name, o.EntryPoint)
}

// DataFileRef is the site-relative, slash-separated path of doc's data file,
// as referenced from the HTML, e.g. "assets/data/cards.json".
func (o Options) DataFileRef(doc Document) string {
	return path.Join(o.dataDir(), discovery.BaseName(doc.Name)+".json")
}

// DataFilePath is the filesystem path of doc's data file.
func (o Options) DataFilePath(doc Document) string {
	return filepath.Join(o.SiteDir, filepath.FromSlash(o.DataFileRef(doc)))
}
