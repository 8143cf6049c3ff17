package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"briefly/briefly/utils/logging"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	logging.InitLogger()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &GroqClient{
		baseURL: srv.URL,
		apiKey:  "test-key",
		model:   "test-model",
	}
}

func TestSummarizeSendsChatRequest(t *testing.T) {
	var got ChatRequest
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "SUBTITLE: ok\n• A: b"}},
			},
		})
	})

	out, err := client.Summarize(context.Background(), "article text")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !strings.Contains(out, "SUBTITLE: ok") {
		t.Errorf("unexpected output %q", out)
	}
	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Temperature != summaryTemperature {
		t.Errorf("temperature = %v, want %v", got.Temperature, summaryTemperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "article text" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
}

func TestSummarizeEmptyChoices(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	_, err := client.Summarize(context.Background(), "text")
	if !errors.Is(err, ErrSummarizationFailed) {
		t.Errorf("Summarize() = %v, want ErrSummarizationFailed", err)
	}
}

func TestSummarizeProviderError(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limit"}}`, http.StatusTooManyRequests)
	})
	_, err := client.Summarize(context.Background(), "text")
	if !errors.Is(err, ErrProvider) {
		t.Errorf("Summarize() = %v, want ErrProvider", err)
	}
}

func TestEditCarriesSummaryAndPrompt(t *testing.T) {
	var got ChatRequest
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "# revised"}},
			},
		})
	})

	out, err := client.Edit(context.Background(), "# original", "make it shorter")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if out != "# revised" {
		t.Errorf("output = %q", out)
	}
	user := got.Messages[len(got.Messages)-1].Content
	if !strings.Contains(user, "# original") || !strings.Contains(user, "make it shorter") {
		t.Errorf("edit prompt missing pieces: %q", user)
	}
}

func TestSummarizeStream(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, token := range []string{"SUBTITLE:", " streamed", " summary"} {
			chunk := map[string]any{
				"choices": []map[string]any{
					{"delta": map[string]string{"content": token}},
				},
			}
			data, _ := json.Marshal(chunk)
			fmt.Fprintf(w, "data: %s\n\n", data)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	ch, errCh := client.SummarizeStream(context.Background(), "text")
	var full strings.Builder
	for token := range ch {
		full.WriteString(token)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("stream error = %v", err)
	}
	if full.String() != "SUBTITLE: streamed summary" {
		t.Errorf("streamed = %q", full.String())
	}
}

func TestSummarizeStreamNoTokens(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	ch, errCh := client.SummarizeStream(context.Background(), "text")
	for range ch {
	}
	if err := <-errCh; !errors.Is(err, ErrSummarizationFailed) {
		t.Errorf("stream error = %v, want ErrSummarizationFailed", err)
	}
}
