// briefly/services/extractor/readability.go
package extractor

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityExtractor delegates to the go-readability port of Mozilla's
// article extraction. Better on long-form editorial pages; the title chain
// falls back to the DOM rules when readability finds none.
type ReadabilityExtractor struct{}

// The parser only uses the page URL to absolutize links, which the text
// output never keeps.
var placeholderURL, _ = url.Parse("https://localhost/")

func (e *ReadabilityExtractor) Extract(html string) (*Article, error) {
	p := readability.NewParser()
	article, err := p.Parse(strings.NewReader(html), placeholderURL)
	if err != nil {
		return nil, ErrNoContent
	}

	text := collapseWhitespace(article.TextContent)
	if text == "" {
		return nil, ErrNoContent
	}

	title := collapseWhitespace(article.Title)
	if title == "" {
		dom := &DOMExtractor{}
		if a, derr := dom.Extract(html); derr == nil {
			title = a.Title
		} else {
			title = FallbackTitle
		}
	}

	return &Article{Title: title, Text: text}, nil
}
