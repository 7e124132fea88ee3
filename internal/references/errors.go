package references

import "fmt"

// RewriteError represents an I/O failure while rewriting a document
type RewriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RewriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rewrite error in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("rewrite error in %s: %s", e.Path, e.Message)
}

func (e *RewriteError) Unwrap() error {
	return e.Cause
}
