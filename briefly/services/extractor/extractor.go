// briefly/services/extractor/extractor.go
package extractor

import (
	"errors"
	"strings"
)

// ErrNoContent means the page yielded no readable text. The pipeline must
// stop here, before any model call.
var ErrNoContent = errors.New("no content extracted")

// FallbackTitle is used when no title can be resolved from the document.
const FallbackTitle = "Untitled Article"

// MaxContentChars bounds the text handed to the model; the cut is a silent
// deterministic prefix, not an error.
const MaxContentChars = 15000

// Article is the extraction result: a resolved title plus the cleaned body
// text with whitespace collapsed.
type Article struct {
	Title string
	Text  string
}

// Extractor turns raw HTML into an Article. Implementations are
// interchangeable: DOM (goquery selectors), Readability, Lenient (bare
// text walk). Select one with New.
type Extractor interface {
	Extract(html string) (*Article, error)
}

// New returns the extractor for a strategy name, defaulting to DOM.
func New(strategy string) Extractor {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "readability":
		return &ReadabilityExtractor{}
	case "lenient":
		return &LenientExtractor{}
	default:
		return &DOMExtractor{}
	}
}

// Truncate cuts text to MaxContentChars runes.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxContentChars {
		return text
	}
	return string(runes[:MaxContentChars])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
