// briefly/services/fetcher/rendered.go
package fetcher

import (
	"context"
	"time"

	"briefly/briefly/config"
	"briefly/briefly/utils/logging"

	"github.com/playwright-community/playwright-go"
)

// RenderedFetcher drives headless Chromium so pages that assemble their
// article body with JavaScript still yield HTML. Same contract as
// HTTPFetcher; redirects are handled by the browser itself.
type RenderedFetcher struct {
	pw      *playwright.Playwright
	timeout time.Duration
}

func NewRenderedFetcher(cfg config.FetchConfig) (*RenderedFetcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RenderedFetcher{pw: pw, timeout: timeout}, nil
}

func (f *RenderedFetcher) Close() {
	if f.pw != nil {
		f.pw.Stop()
	}
}

func (f *RenderedFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	defer logging.LogDuration(ctx, "fetcher_fetch_rendered")()

	if _, err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	browser, err := f.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(browserUserAgent),
	})
	if err != nil {
		return nil, err
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, err
	}

	if _, err := page.Goto(rawURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(f.timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return nil, err
	}

	content, err := page.Content()
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, ErrEmptyResponse
	}

	return &Page{
		HTML:     content,
		FinalURL: page.URL(),
	}, nil
}
