package migration

import (
	"fmt"
	"os"
)

// ReadDocument reads the full text of doc.
func ReadDocument(doc Document) (string, error) {
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", doc.Name, err)
	}
	return string(content), nil
}

// WriteDocument overwrites doc in place, keeping its permission bits.
// The write is not atomic: an interrupted write can truncate the file.
func WriteDocument(doc Document, content string) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(doc.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(doc.Path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", doc.Name, err)
	}
	return nil
}
