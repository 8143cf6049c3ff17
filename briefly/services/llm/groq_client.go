// briefly/services/llm/groq_client.go
package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"briefly/briefly/config"
	httputils "briefly/briefly/utils/http"
	"briefly/briefly/utils/logging"

	"go.uber.org/zap"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	summaryTemperature = 0.2
	summaryMaxTokens   = 1024
)

// GroqClient talks to Groq's OpenAI-compatible chat endpoint. Generation is
// deterministic-leaning (low temperature) so repeated runs stay structurally
// stable, though never byte-identical.
type GroqClient struct {
	baseURL string
	apiKey  string
	model   string
}

func NewGroqClient(cfg config.GroqConfig) *GroqClient {
	return &GroqClient{
		baseURL: defaultGroqBaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

func (c *GroqClient) Summarize(ctx context.Context, content string) (string, error) {
	return c.complete(ctx, summarySystemPrompt, content)
}

func (c *GroqClient) Edit(ctx context.Context, summary, prompt string) (string, error) {
	return c.complete(ctx, editSystemPrompt, buildEditPrompt(summary, prompt))
}

func (c *GroqClient) complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	defer logging.LogDuration(ctx, "groq_complete")()

	req := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	var resp struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := httputils.PostJSONWithAuth(ctx, url, c.apiKey, req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrSummarizationFailed
	}
	return resp.Choices[0].Message.Content, nil
}

// SummarizeStream reads Groq's SSE stream and forwards content deltas.
func (c *GroqClient) SummarizeStream(ctx context.Context, content string) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	req := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: content},
		},
		Stream:      true,
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	body, err := httputils.PostStreamWithAuth(ctx, url, c.apiKey, req)
	if err != nil {
		errCh <- fmt.Errorf("%w: %v", ErrProvider, err)
		close(ch)
		close(errCh)
		return ch, errCh
	}

	go func() {
		defer func() {
			close(ch)
			close(errCh)
			body.Close()
		}()

		reader := bufio.NewReader(body)
		sent := false
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					logging.ErrorLogger.Error("groq stream read error", zap.Error(err))
					errCh <- fmt.Errorf("%w: %v", ErrProvider, err)
				} else if !sent {
					errCh <- ErrSummarizationFailed
				}
				return
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "data:") {
				line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
			if line == "[DONE]" {
				if !sent {
					errCh <- ErrSummarizationFailed
				}
				return
			}

			var chunk struct {
				Choices []struct {
					Delta struct {
						Content string `json:"content"`
					} `json:"delta"`
				} `json:"choices"`
			}
			if err := json.Unmarshal([]byte(line), &chunk); err != nil {
				logging.ErrorLogger.Error("groq stream JSON parse error",
					zap.Error(err), zap.String("raw_line", line))
				continue
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case ch <- choice.Delta.Content:
					sent = true
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, errCh
}
