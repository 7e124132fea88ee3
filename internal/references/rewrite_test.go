package references

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/flashcard-migrate/internal/migration"
	"github.com/jonathan/flashcard-migrate/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsPage = `<html>
<body>
    <script src="assets/js/app.js"></script>
    <script>
        const vocabulary = [{word: "foo", MEANING: "bar"}];
        const app = new FlashcardApp(vocabulary);
    </script>
</body>
</html>`

const rewrittenCards = `<html>
<body>
    <script src="assets/js/app.js"></script>
    <script>
        // Load data from JSON
        const app = new FlashcardApp('assets/data/cards.json');
    </script>
</body>
</html>`

func TestRewrite(t *testing.T) {
	out, changed := Rewrite(cardsPage, "assets/data/cards.json")
	assert.True(t, changed)
	assert.Equal(t, rewrittenCards, out)

	again, changed := Rewrite(out, "assets/data/cards.json")
	assert.False(t, changed)
	assert.Equal(t, out, again)
}

func TestRewrite_PathIsLiteral(t *testing.T) {
	out, changed := Rewrite(cardsPage, "data/$1.json")
	assert.True(t, changed)
	assert.Contains(t, out, "new FlashcardApp('data/$1.json')")
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func TestRewriter_Apply_MissingDataFileLeavesDocument(t *testing.T) {
	dir := writeSite(t, map[string]string{"cards.html": cardsPage})
	doc := migration.Document{Name: "cards.html", Path: filepath.Join(dir, "cards.html")}

	outcome := NewRewriter(migration.Options{SiteDir: dir}).Apply(context.Background(), doc)
	assert.Equal(t, migration.StatusSkipped, outcome.Status)
	assert.Equal(t, migration.ReasonDataFileMissing, outcome.Reason)
	assert.Equal(t, "Skipping cards.html, JSON not found at assets/data/cards.json", outcome.Message)

	content, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, cardsPage, string(content))
}

func TestRewriter_Apply_DryRun(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"cards.html":             cardsPage,
		"assets/data/cards.json": "[]",
	})
	doc := migration.Document{Name: "cards.html", Path: filepath.Join(dir, "cards.html")}

	outcome := NewRewriter(migration.Options{SiteDir: dir, DryRun: true}).Apply(context.Background(), doc)
	assert.Equal(t, migration.StatusUpdated, outcome.Status)

	content, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, cardsPage, string(content))
}

// TestEndToEnd_CardsScenario walks the documented migration of one page:
// extract, rewrite, then extract again.
func TestEndToEnd_CardsScenario(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"cards.html": cardsPage,
		"index.html": cardsPage,
	})
	opts := migration.Options{SiteDir: dir}
	var out bytes.Buffer
	runner := migration.NewRunner(dir, "", &out, nil)
	ctx := context.Background()

	report, err := runner.Run(ctx, vocab.NewExtractor(opts))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	data, err := os.ReadFile(filepath.Join(dir, "assets", "data", "cards.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"word": "foo", "meaning": "bar"}]`, string(data))

	report, err = runner.Run(ctx, NewRewriter(opts))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	html, err := os.ReadFile(filepath.Join(dir, "cards.html"))
	require.NoError(t, err)
	assert.Equal(t, rewrittenCards, string(html))

	out.Reset()
	report, err = runner.Run(ctx, vocab.NewExtractor(opts))
	require.NoError(t, err)
	o, ok := report.Outcome("cards.html")
	require.True(t, ok)
	assert.Equal(t, migration.ReasonNoVocabulary, o.Reason)
	assert.Contains(t, out.String(), "No vocabulary found in cards.html")

	// The entry point is skipped by both data steps regardless of content.
	for _, step := range []migration.Step{vocab.NewExtractor(opts), NewRewriter(opts)} {
		report, err = runner.Run(ctx, step)
		require.NoError(t, err)
		o, ok := report.Outcome("index.html")
		require.True(t, ok)
		assert.Equal(t, migration.ReasonEntryPoint, o.Reason, step.Name())
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, cardsPage, string(index))
	_, err = os.Stat(filepath.Join(dir, "assets", "data", "index.json"))
	assert.True(t, os.IsNotExist(err))

	// A second rewrite reports the no-op.
	report, err = runner.Run(ctx, NewRewriter(opts))
	require.NoError(t, err)
	o, _ = report.Outcome("cards.html")
	assert.Equal(t, migration.ReasonNoInlineBlock, o.Reason)
	assert.True(t, strings.HasSuffix(o.Message, "(already updated?)"))
}
