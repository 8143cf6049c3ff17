// briefly/services/parser/parser.go
package parser

import (
	"errors"
	"strings"
)

// ErrEmptySummary means the model output contained neither a title nor any
// bullet points. Partial output parses fine and is kept as-is.
var ErrEmptySummary = errors.New("empty summary")

const subtitleMarker = "SUBTITLE:"

type Point struct {
	Heading     string `json:"heading"`
	Explanation string `json:"explanation"`
}

// Parsed is the structured form of the model's semi-structured text.
type Parsed struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Points   []Point `json:"points"`
}

// Parse converts raw model output into a Parsed record. Parsing is lenient:
// lines that match no marker are dropped, so malformed output degrades to
// fewer points instead of failing the run.
func Parse(raw string) (*Parsed, error) {
	p := &Parsed{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "#"):
			if p.Title == "" {
				p.Title = cleanHeading(strings.TrimLeft(line, "# "))
			}
		case strings.HasPrefix(line, subtitleMarker):
			if p.Subtitle == "" {
				p.Subtitle = strings.TrimSpace(strings.TrimPrefix(line, subtitleMarker))
			}
		case strings.HasPrefix(line, "•"):
			if pt, ok := parsePoint(line); ok {
				p.Points = append(p.Points, pt)
			}
		}
	}

	if p.Title == "" && len(p.Points) == 0 {
		return nil, ErrEmptySummary
	}
	return p, nil
}

func parsePoint(line string) (Point, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "•"))
	if body == "" {
		return Point{}, false
	}
	heading, explanation, found := strings.Cut(body, ":")
	if !found {
		return Point{Heading: cleanHeading(heading)}, cleanHeading(heading) != ""
	}
	return Point{
		Heading:     cleanHeading(heading),
		Explanation: strings.TrimSpace(explanation),
	}, true
}

// cleanHeading strips the bracket and bold markers models like to emit
// around headings ("[**Key Point**]" -> "Key Point").
func cleanHeading(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}

// Render maps a Parsed record to the display payload stored as a summary's
// content. Pure formatting; given the same record it always produces the
// same string.
func Render(p *Parsed) string {
	var sb strings.Builder
	if p.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(p.Title)
		sb.WriteString("\n\n")
	}
	if p.Subtitle != "" {
		sb.WriteString(p.Subtitle)
		sb.WriteString("\n\n")
	}
	for _, pt := range p.Points {
		sb.WriteString("• ")
		sb.WriteString(pt.Heading)
		if pt.Explanation != "" {
			sb.WriteString(": ")
			sb.WriteString(pt.Explanation)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
