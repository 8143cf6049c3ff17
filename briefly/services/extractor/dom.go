// briefly/services/extractor/dom.go
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Elements that never carry article text, plus the usual ad/comment/share
// containers.
const strippedSelectors = "script, style, nav, footer, header, aside, .ads, .comments, .social-share"

// Containers tried in order before falling back to a paragraph sweep.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".post-content",
	".article-content",
	".entry-content",
	"#content",
}

// DOMExtractor resolves title and body through document selectors.
type DOMExtractor struct{}

func (e *DOMExtractor) Extract(html string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	title := resolveTitle(doc)

	doc.Find(strippedSelectors).Remove()

	var text string
	for _, sel := range contentSelectors {
		text = collapseWhitespace(doc.Find(sel).Text())
		if text != "" {
			break
		}
	}
	if text == "" {
		// Generic sweep: every paragraph in the document.
		var sb strings.Builder
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			sb.WriteString(s.Text())
			sb.WriteString(" ")
		})
		text = collapseWhitespace(sb.String())
	}
	if text == "" {
		return nil, ErrNoContent
	}

	return &Article{Title: title, Text: text}, nil
}

// resolveTitle walks the usual suspects in order: open-graph, twitter card,
// <title>, first <h1>, fallback literal.
func resolveTitle(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := collapseWhitespace(v); t != "" {
			return t
		}
	}
	if v, ok := doc.Find(`meta[name="twitter:title"]`).First().Attr("content"); ok {
		if t := collapseWhitespace(v); t != "" {
			return t
		}
	}
	if t := collapseWhitespace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := collapseWhitespace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return FallbackTitle
}
