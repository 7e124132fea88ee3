package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upperStep upper-cases documents containing "todo" and fails on "broken".
type upperStep struct {
	seen []string
}

func (s *upperStep) Name() string { return "upper" }

func (s *upperStep) Apply(_ context.Context, doc Document) Outcome {
	s.seen = append(s.seen, doc.Name)
	content, err := ReadDocument(doc)
	if err != nil {
		return Failed(doc, ReasonIOError, err, "Failed to read %s", doc.Name)
	}
	if strings.Contains(content, "broken") {
		return Failed(doc, ReasonParseFailed, errors.New("boom"), "Failed to parse %s", doc.Name)
	}
	if !strings.Contains(content, "todo") {
		return Skipped(doc, ReasonMarkerPresent, "Skipping %s", doc.Name)
	}
	if err := WriteDocument(doc, strings.ToUpper(content)); err != nil {
		return Failed(doc, ReasonIOError, err, "Failed to write %s", doc.Name)
	}
	return Updated(doc, "Updated %s", doc.Name)
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestRunner_Run_ContinuesAfterFailure(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"a.html": "broken",
		"b.html": "todo",
		"c.html": "done",
	})

	var out bytes.Buffer
	runner := NewRunner(dir, "", &out, nil)
	step := &upperStep{}

	report, err := runner.Run(context.Background(), step)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.html", "b.html", "c.html"}, step.seen)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.NotEmpty(t, report.FinishedAt)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Failed to parse a.html: boom",
		"Updated b.html",
		"Skipping c.html",
	}, lines)

	content, err := os.ReadFile(filepath.Join(dir, "b.html"))
	require.NoError(t, err)
	assert.Equal(t, "TODO", string(content))
}

type countingStep struct{ upperStep }

func (s *countingStep) AnnounceCount() bool { return true }

func TestRunner_Run_AnnouncesCountOnlyWhenAsked(t *testing.T) {
	dir := writeSite(t, map[string]string{"a.html": "done", "b.html": "done"})

	var out bytes.Buffer
	_, err := NewRunner(dir, "", &out, nil).Run(context.Background(), &upperStep{})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Found")

	out.Reset()
	_, err = NewRunner(dir, "", &out, nil).Run(context.Background(), &countingStep{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Found 2 HTML files.\n"))
}

func TestRunner_Run_DiscoveryError(t *testing.T) {
	runner := NewRunner(filepath.Join(t.TempDir(), "missing"), "", &bytes.Buffer{}, nil)
	report, err := runner.Run(context.Background(), &upperStep{})
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to discover documents")
}

func TestRunner_Run_CancelledBetweenDocuments(t *testing.T) {
	dir := writeSite(t, map[string]string{"a.html": "todo", "b.html": "todo"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	step := &upperStep{}
	report, err := NewRunner(dir, "", &bytes.Buffer{}, nil).Run(ctx, step)
	require.NoError(t, err)
	assert.True(t, report.Interrupted)
	assert.Empty(t, step.seen)
}

func TestReport_ToJSON(t *testing.T) {
	report := NewReport("extract-vocab")
	doc := Document{Name: "cards.html"}
	report.Add(Updated(doc, "Extracted cards.json"))
	report.Add(Failed(Document{Name: "bad.html"}, ReasonParseFailed, errors.New("bad"), "Failed to parse bad.html"))
	report.Finish()

	jsonBytes, err := report.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, "extract-vocab", decoded["step"])
	assert.Equal(t, report.RunID.String(), decoded["run_id"])
	assert.EqualValues(t, 1, decoded["updated"])
	assert.EqualValues(t, 1, decoded["failed"])

	outcomes := decoded["outcomes"].([]any)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "bad", outcomes[1].(map[string]any)["error"])
	assert.Equal(t, "parse_failed", outcomes[1].(map[string]any)["reason"])

	o, ok := report.Outcome("cards.html")
	assert.True(t, ok)
	assert.Equal(t, StatusUpdated, o.Status)
}

func TestWriteReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	reports := []*Report{NewReport("add-srs"), NewReport("add-firebase")}

	require.NoError(t, WriteReports(path, reports))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "add-srs", decoded[0]["step"])
}

func TestWriteDocument_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(p, []byte("old"), 0600))

	doc := Document{Name: "page.html", Path: p}
	require.NoError(t, WriteDocument(doc, "new"))

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	content, err := ReadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "new", content)
}
