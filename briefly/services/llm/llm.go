// briefly/services/llm/llm.go
package llm

import (
	"context"
	"errors"
)

var (
	// ErrProvider wraps transport/auth/rate-limit failures from the
	// completion endpoint.
	ErrProvider = errors.New("summarization provider error")
	// ErrSummarizationFailed means the provider answered but returned no
	// usable text.
	ErrSummarizationFailed = errors.New("no summary text generated")
)

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Summarizer is the model-facing side of the pipeline. The controller only
// sees this interface; tests stub it.
type Summarizer interface {
	// Summarize sends extracted article text and returns the raw model
	// output under the summary format contract.
	Summarize(ctx context.Context, content string) (string, error)
	// Edit revises an existing summary per a free-text instruction, same
	// format contract.
	Edit(ctx context.Context, summary, prompt string) (string, error)
	// SummarizeStream streams tokens as they are generated. The error
	// channel delivers at most one value, after the token channel closes.
	SummarizeStream(ctx context.Context, content string) (<-chan string, <-chan error)
}
