package audit

import "fmt"

// AuditError represents a page that could not be inspected
type AuditError struct {
	Path    string
	Message string
	Cause   error
}

func (e *AuditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("audit error in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("audit error in %s: %s", e.Path, e.Message)
}

func (e *AuditError) Unwrap() error {
	return e.Cause
}
