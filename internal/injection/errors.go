package injection

import "fmt"

// InjectError represents an I/O failure while injecting into a document
type InjectError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InjectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("inject error in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("inject error in %s: %s", e.Path, e.Message)
}

func (e *InjectError) Unwrap() error {
	return e.Cause
}
