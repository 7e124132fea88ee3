// Package markers defines the fixed textual markers that decide whether a
// document still needs a transformation. Every check site and every
// transform site reads the same value from here.
package markers

import (
	"regexp"
	"strings"
)

// Marker is a fixed substring whose presence in a document is meaningful.
type Marker string

// In reports whether the marker occurs in content.
func (m Marker) In(content string) bool {
	return strings.Contains(content, string(m))
}

// String returns the raw marker text.
func (m Marker) String() string {
	return string(m)
}

const (
	// AppScriptSrc is the src attribute of the application script.
	AppScriptSrc Marker = "assets/js/app.js"

	// AppScriptTag is the anchor every injected script is placed before.
	AppScriptTag Marker = `<script src="` + AppScriptSrc + `"></script>`

	// FirebaseMarker is present once the Firebase SDK bundle has been injected.
	FirebaseMarker Marker = "firebase-app.js"

	// SRSMarker is present once the spaced-repetition script has been injected.
	SRSMarker Marker = "assets/js/srs.js"

	// VocabularyAssignment starts the inline vocabulary literal.
	VocabularyAssignment Marker = "const vocabulary = ["

	// AppConstructor is emitted by the reference rewriter.
	AppConstructor Marker = "new FlashcardApp("
)

// Indent is the indentation the site's HTML uses for tags inside <head>/<body>.
const Indent = "    "

var (
	// VocabularyLiteral captures the array literal assigned to vocabulary.
	// Non-greedy and spanning newlines; the first match wins.
	VocabularyLiteral = regexp.MustCompile(`(?s)const vocabulary = (\[.*?\]);`)

	// VocabularyScriptBlock matches a whole inline <script> element that
	// assigns the vocabulary literal.
	VocabularyScriptBlock = regexp.MustCompile(`(?s)<script>.*?const vocabulary = \[.*?</script>`)

	// DataReference captures the JSON path passed to FlashcardApp.
	DataReference = regexp.MustCompile(`new FlashcardApp\('([^']+\.json)'\)`)
)
