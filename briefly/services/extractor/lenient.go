// briefly/services/extractor/lenient.go
package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// LenientExtractor is the degraded-mode strategy: a plain text walk over the
// parse tree, skipping only the subtrees that can never hold article text.
// Useful when a page's markup is too broken for selector-based extraction.
type LenientExtractor struct{}

var lenientSkipped = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"header": true,
	"aside":  true,
}

func (e *LenientExtractor) Extract(rawHTML string) (*Article, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, ErrNoContent
	}

	var sb strings.Builder
	var title string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if lenientSkipped[n.Data] {
				return
			}
			if n.Data == "title" {
				if title == "" && n.FirstChild != nil {
					title = collapseWhitespace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := collapseWhitespace(sb.String())
	if text == "" {
		return nil, ErrNoContent
	}
	if title == "" {
		title = FallbackTitle
	}

	return &Article{Title: title, Text: text}, nil
}
