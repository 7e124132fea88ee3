package migration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Report collects the outcomes of one step over the whole site.
type Report struct {
	RunID       uuid.UUID `json:"run_id"`
	Step        string    `json:"step"`
	StartedAt   string    `json:"started_at"`  // RFC3339
	FinishedAt  string    `json:"finished_at"` // RFC3339
	Interrupted bool      `json:"interrupted,omitempty"`
	Updated     int       `json:"updated"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	Outcomes    []Outcome `json:"outcomes"`
}

// NewReport starts a report for the named step.
func NewReport(step string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Step:      step,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		Outcomes:  []Outcome{},
	}
}

// Add records an outcome and updates the counters.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusUpdated:
		r.Updated++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Finish stamps the completion time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC().Format(time.RFC3339)
}

// Outcome returns the recorded outcome for path, if any.
func (r *Report) Outcome(path string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Path == path {
			return o, true
		}
	}
	return Outcome{}, false
}

// ToJSON marshals the report to pretty-printed JSON.
func (r *Report) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return jsonBytes, nil
}

// WriteReports writes one or more reports as a JSON array to path.
func WriteReports(path string, reports []*Report) error {
	jsonBytes, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reports to JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
