package extractor

import (
	"errors"
	"strings"
	"testing"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Page Title</title>
<meta property="og:title" content="OG Title">
<meta name="twitter:title" content="Twitter Title">
<script>var tracking = "SCRIPT_TEXT";</script>
<style>.hidden { display: none; } /* STYLE_TEXT */</style>
</head>
<body>
<nav>Home About Contact NAV_TEXT</nav>
<header>HEADER_TEXT</header>
<article>
<h1>Visible Heading</h1>
<p>First paragraph of the article body.</p>
<p>Second   paragraph with    extra whitespace.</p>
</article>
<aside>ASIDE_TEXT</aside>
<div class="social-share">SHARE_TEXT</div>
<footer>FOOTER_TEXT</footer>
</body>
</html>`

func TestDOMExtractorBody(t *testing.T) {
	a, err := (&DOMExtractor{}).Extract(articlePage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for _, banned := range []string{"SCRIPT_TEXT", "STYLE_TEXT", "NAV_TEXT", "HEADER_TEXT", "ASIDE_TEXT", "SHARE_TEXT", "FOOTER_TEXT"} {
		if strings.Contains(a.Text, banned) {
			t.Errorf("extracted text contains stripped content %q", banned)
		}
	}
	if !strings.Contains(a.Text, "First paragraph of the article body.") {
		t.Errorf("extracted text missing article body: %q", a.Text)
	}
	if strings.Contains(a.Text, "  ") {
		t.Errorf("whitespace not collapsed: %q", a.Text)
	}
}

func TestDOMExtractorTitleChain(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og title wins",
			html: articlePage,
			want: "OG Title",
		},
		{
			name: "twitter title next",
			html: `<html><head><meta name="twitter:title" content="TW"><title>T</title></head><body><p>body text</p></body></html>`,
			want: "TW",
		},
		{
			name: "title element next",
			html: `<html><head><title>T</title></head><body><h1>H</h1><p>body text</p></body></html>`,
			want: "T",
		},
		{
			name: "h1 next",
			html: `<html><body><h1>H</h1><p>body text</p></body></html>`,
			want: "H",
		},
		{
			name: "fallback literal",
			html: `<html><body><p>body text</p></body></html>`,
			want: FallbackTitle,
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			a, err := (&DOMExtractor{}).Extract(tt.html)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if a.Title != tt.want {
				t.Errorf("title = %q, want %q", a.Title, tt.want)
			}
		})
	}
}

func TestDOMExtractorParagraphSweep(t *testing.T) {
	html := `<html><body>
<div><p>Paragraph one.</p></div>
<div><p>Paragraph two.</p></div>
</body></html>`
	a, err := (&DOMExtractor{}).Extract(html)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(a.Text, "Paragraph one.") || !strings.Contains(a.Text, "Paragraph two.") {
		t.Errorf("paragraph sweep missed content: %q", a.Text)
	}
}

func TestDOMExtractorNoContent(t *testing.T) {
	cases := []string{
		`<html><body></body></html>`,
		`<html><head><script>x()</script></head><body><nav>menu</nav></body></html>`,
		``,
	}
	for _, html := range cases {
		if _, err := (&DOMExtractor{}).Extract(html); !errors.Is(err, ErrNoContent) {
			t.Errorf("Extract(%q) = %v, want ErrNoContent", html, err)
		}
	}
}

func TestLenientExtractor(t *testing.T) {
	a, err := (&LenientExtractor{}).Extract(articlePage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if strings.Contains(a.Text, "SCRIPT_TEXT") || strings.Contains(a.Text, "STYLE_TEXT") {
		t.Errorf("lenient extractor kept script/style text: %q", a.Text)
	}
	if !strings.Contains(a.Text, "First paragraph of the article body.") {
		t.Errorf("lenient extractor missing body: %q", a.Text)
	}
	if a.Title != "Page Title" {
		t.Errorf("title = %q, want %q", a.Title, "Page Title")
	}
}

func TestLenientExtractorNoContent(t *testing.T) {
	if _, err := (&LenientExtractor{}).Extract(`<html><body><script>x()</script></body></html>`); !errors.Is(err, ErrNoContent) {
		t.Errorf("Extract() = %v, want ErrNoContent", err)
	}
}

func TestReadabilityExtractor(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<html><head><title>Long Read</title></head><body><article>`)
	for i := 0; i < 20; i++ {
		sb.WriteString(`<p>This paragraph pads the article enough for readability scoring to keep it as main content.</p>`)
	}
	sb.WriteString(`</article></body></html>`)

	a, err := (&ReadabilityExtractor{}).Extract(sb.String())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(a.Text, "pads the article") {
		t.Errorf("readability extractor missing body: %q", a.Text)
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	if _, ok := New("dom").(*DOMExtractor); !ok {
		t.Error(`New("dom") did not return a DOMExtractor`)
	}
	if _, ok := New("readability").(*ReadabilityExtractor); !ok {
		t.Error(`New("readability") did not return a ReadabilityExtractor`)
	}
	if _, ok := New("lenient").(*LenientExtractor); !ok {
		t.Error(`New("lenient") did not return a LenientExtractor`)
	}
	if _, ok := New("").(*DOMExtractor); !ok {
		t.Error(`New("") did not default to DOMExtractor`)
	}
}

func TestTruncate(t *testing.T) {
	short := "short text"
	if Truncate(short) != short {
		t.Error("Truncate changed text under the limit")
	}

	long := strings.Repeat("a", MaxContentChars+100)
	got := Truncate(long)
	if len([]rune(got)) != MaxContentChars {
		t.Errorf("Truncate length = %d, want %d", len([]rune(got)), MaxContentChars)
	}
	if got != long[:MaxContentChars] {
		t.Error("Truncate is not a prefix cut")
	}
}
