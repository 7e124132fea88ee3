package vocab

import (
	"regexp"
)

var (
	lineCommentRe  = regexp.MustCompile(`//.*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// bareKeyRe finds word-character keys directly after '{' or ','.
	bareKeyRe = regexp.MustCompile(`([{,])\s*([a-zA-Z0-9_]+):`)
)

// Method records how a literal was parsed.
type Method string

const (
	MethodStrict   Method = "strict"
	MethodRepaired Method = "repaired"
)

// ParseResult is a successfully parsed vocabulary literal.
type ParseResult struct {
	Entries []Entry
	Method  Method
}

// StripComments removes // line comments and /* */ block comments.
// The scan is textual, so "//" inside a string value is removed too.
func StripComments(literal string) string {
	literal = lineCommentRe.ReplaceAllString(literal, "")
	return blockCommentRe.ReplaceAllString(literal, "")
}

// RepairKeys quotes bare identifier keys: {word: "x"} -> { "word": "x"}.
// Single-quoted strings and trailing commas are not repaired.
func RepairKeys(literal string) string {
	return bareKeyRe.ReplaceAllString(literal, `$1 "$2":`)
}

// Parse turns the captured array literal into entries. It strips comments,
// tries a strict parse, and falls back to a single key-quoting repair.
func Parse(literal string) (*ParseResult, error) {
	cleaned := StripComments(literal)

	entries, strictErr := DecodeEntries(cleaned)
	if strictErr == nil {
		return &ParseResult{Entries: entries, Method: MethodStrict}, nil
	}

	entries, repairErr := DecodeEntries(RepairKeys(cleaned))
	if repairErr != nil {
		return nil, &ParseError{
			Message:     "literal is not valid JSON even after quoting keys",
			StrictCause: strictErr,
			Cause:       repairErr,
		}
	}

	return &ParseResult{Entries: entries, Method: MethodRepaired}, nil
}
