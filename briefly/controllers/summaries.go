// briefly/controllers/summaries.go
package controllers

import (
	"context"
	"strings"
	"time"

	"briefly/briefly/services/extractor"
	"briefly/briefly/services/fetcher"
	"briefly/briefly/services/llm"
	"briefly/briefly/services/parser"
	"briefly/briefly/sources/db/dao"
	"briefly/briefly/sources/db/models"
	"briefly/briefly/sources/storage"
	"briefly/briefly/utils/logging"

	"go.uber.org/zap"
)

const storageTimeout = 10 * time.Second

// SummariesController runs the pipeline (fetch, extract, summarize, parse,
// persist) and fronts the summaries table. Each stage fails fast; nothing is
// written unless the whole run succeeds.
type SummariesController struct {
	dao        *dao.SummaryDAO
	fetcher    fetcher.Fetcher
	extractor  extractor.Extractor
	summarizer llm.Summarizer
	archive    *storage.ArchiveClient // nil disables snapshot archiving
}

func NewSummariesController(
	summaryDAO *dao.SummaryDAO,
	f fetcher.Fetcher,
	e extractor.Extractor,
	s llm.Summarizer,
	archive *storage.ArchiveClient,
) *SummariesController {
	return &SummariesController{
		dao:        summaryDAO,
		fetcher:    f,
		extractor:  e,
		summarizer: s,
		archive:    archive,
	}
}

// Summarize runs one full pipeline pass for the given user and URL.
func (c *SummariesController) Summarize(ctx context.Context, userID, rawURL string) (*models.Summary, error) {
	defer logging.LogDuration(ctx, "pipeline_summarize")()

	article, err := c.fetchAndExtract(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	raw, err := c.summarizer.Summarize(ctx, extractor.Truncate(article.Text))
	if err != nil {
		return nil, err
	}

	return c.parseAndPersist(ctx, userID, rawURL, article, raw)
}

// SummarizeStream is the streaming variant: onToken receives model output as
// it is generated, and the record is parsed and persisted only after the
// stream completes.
func (c *SummariesController) SummarizeStream(ctx context.Context, userID, rawURL string, onToken func(string)) (*models.Summary, error) {
	defer logging.LogDuration(ctx, "pipeline_summarize_stream")()

	article, err := c.fetchAndExtract(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	tokens, errCh := c.summarizer.SummarizeStream(ctx, extractor.Truncate(article.Text))
	var full strings.Builder
	for token := range tokens {
		full.WriteString(token)
		if onToken != nil {
			onToken(token)
		}
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	return c.parseAndPersist(ctx, userID, rawURL, article, full.String())
}

// EditSummary re-invokes the model's edit variant. It never touches
// persistence; the caller saves the result with an explicit update.
func (c *SummariesController) EditSummary(ctx context.Context, summary, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "pipeline_edit")()
	return c.summarizer.Edit(ctx, summary, prompt)
}

func (c *SummariesController) fetchAndExtract(ctx context.Context, rawURL string) (*extractor.Article, error) {
	page, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if c.archive != nil {
		// Best-effort snapshot; never blocks or fails the run.
		go func(p fetcher.Page) {
			archiveCtx, cancel := context.WithTimeout(context.Background(), storageTimeout)
			defer cancel()
			if _, err := c.archive.UploadSnapshot(archiveCtx, rawURL, p.FinalURL, p.HTML); err != nil {
				logging.ErrorLogger.Error("snapshot archive failed",
					zap.String("url", rawURL), zap.Error(err))
			}
		}(*page)
	}

	article, err := c.extractor.Extract(page.HTML)
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (c *SummariesController) parseAndPersist(ctx context.Context, userID, rawURL string, article *extractor.Article, raw string) (*models.Summary, error) {
	parsed, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	title := parsed.Title
	if title == "" {
		title = article.Title
	}

	summary := &models.Summary{
		UserID:  userID,
		Title:   title,
		Content: parser.Render(parsed),
		URL:     rawURL,
	}
	if err := c.dao.Create(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *SummariesController) GetSummary(ctx context.Context, id, userID string) (*models.Summary, error) {
	return c.dao.GetByID(ctx, id, userID)
}

func (c *SummariesController) ListSummaries(ctx context.Context, userID string) ([]models.Summary, error) {
	return c.dao.ListByUser(ctx, userID)
}

func (c *SummariesController) UpdateSummary(ctx context.Context, id, userID, content string) (*models.Summary, error) {
	return c.dao.UpdateContent(ctx, id, userID, content)
}

func (c *SummariesController) DeleteSummary(ctx context.Context, id, userID string) (bool, error) {
	return c.dao.Delete(ctx, id, userID)
}
