// Package discovery locates the HTML documents a migration step runs over.
package discovery

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches the site's top-level HTML pages only.
const DefaultPattern = "*.html"

// DefaultEntryPoint is the landing page that carries no vocabulary.
const DefaultEntryPoint = "index.html"

// ValidatePattern checks that pattern is a well-formed glob matching only
// top-level files of the site directory. Data files are keyed by base name,
// so pages in different directories must never share a run.
func ValidatePattern(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid document pattern %q", pattern)
	}
	if strings.ContainsAny(pattern, `/\`) || strings.Contains(pattern, "**") {
		return fmt.Errorf("document pattern %q must match top-level files only", pattern)
	}
	return nil
}

// FindDocuments returns the names of all regular files directly inside dir
// that match pattern. Results are sorted so every run visits documents in the
// same order.
func FindDocuments(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat site directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site path is not a directory: %s", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	sort.Strings(matches)
	return matches, nil
}

// IsEntryPoint reports whether name refers to the entry-point document.
// Only the base name is compared, so "pages/index.html" also matches.
func IsEntryPoint(name, entryPoint string) bool {
	if entryPoint == "" {
		entryPoint = DefaultEntryPoint
	}
	return path.Base(name) == entryPoint
}

// BaseName strips directory and extension: "cards.html" -> "cards".
func BaseName(name string) string {
	base := path.Base(name)
	return base[:len(base)-len(path.Ext(base))]
}
