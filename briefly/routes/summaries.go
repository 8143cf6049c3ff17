// briefly/routes/summaries.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"briefly/briefly/config"
	"briefly/briefly/controllers"
	"briefly/briefly/middlewares"
	"briefly/briefly/services/extractor"
	"briefly/briefly/services/fetcher"
	"briefly/briefly/services/llm"
	"briefly/briefly/services/parser"
	"briefly/briefly/types"
	"briefly/briefly/utils/logging"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		if res == nil {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

// pipelineError translates a pipeline failure into a response status and a
// safe message. Validation and extraction problems are the user's to fix
// (4xx); network, provider and storage failures stay generic (5xx) with the
// detail logged server-side only.
func pipelineError(err error) (int, error) {
	switch {
	case errors.Is(err, fetcher.ErrInvalidURL):
		return http.StatusBadRequest, errors.New("a valid http or https URL is required")
	case errors.Is(err, extractor.ErrNoContent):
		return http.StatusBadRequest, errors.New("no readable content found at that URL")
	}

	logging.ErrorLogger.Error("pipeline failed", zap.Error(err))
	switch {
	case errors.Is(err, fetcher.ErrTimeout):
		return http.StatusInternalServerError, errors.New("fetching the article timed out")
	case errors.Is(err, llm.ErrProvider),
		errors.Is(err, llm.ErrSummarizationFailed),
		errors.Is(err, parser.ErrEmptySummary):
		return http.StatusInternalServerError, errors.New("failed to generate summary")
	default:
		return http.StatusInternalServerError, errors.New("failed to process request")
	}
}

// storageError hides persistence failures from the client the same way
// pipelineError hides provider failures: generic message out, detail in the
// error log only.
func storageError(err error) (int, error) {
	logging.ErrorLogger.Error("storage failed", zap.Error(err))
	return http.StatusInternalServerError, errors.New("failed to process request")
}

func SummariesRoutes(ctrl *controllers.SummariesController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/summarize", handleJSON(func(r *http.Request) (any, int, error) {
			userID := middlewares.UserID(r.Context())
			var req types.SummarizeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			summary, err := ctrl.Summarize(r.Context(), userID, req.URL)
			if err != nil {
				status, msg := pipelineError(err)
				return nil, status, msg
			}
			return summary, http.StatusCreated, nil
		}))

		gr.Post("/edit-summary", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.EditSummaryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			if req.Summary == "" || req.Prompt == "" {
				return nil, http.StatusBadRequest, errors.New("summary and prompt are required")
			}
			updated, err := ctrl.EditSummary(r.Context(), req.Summary, req.Prompt)
			if err != nil {
				status, msg := pipelineError(err)
				return nil, status, msg
			}
			return types.EditSummaryResponse{UpdatedSummary: updated}, http.StatusOK, nil
		}))

		gr.Get("/summaries", handleJSON(func(r *http.Request) (any, int, error) {
			userID := middlewares.UserID(r.Context())
			summaries, err := ctrl.ListSummaries(r.Context(), userID)
			if err != nil {
				status, msg := storageError(err)
				return nil, status, msg
			}
			return summaries, http.StatusOK, nil
		}))

		gr.Get("/summaries/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			userID := middlewares.UserID(r.Context())
			summary, err := ctrl.GetSummary(r.Context(), chi.URLParam(r, "id"), userID)
			if err != nil {
				status, msg := storageError(err)
				return nil, status, msg
			}
			if summary == nil {
				return nil, http.StatusNotFound, errors.New("summary not found")
			}
			return summary, http.StatusOK, nil
		}))

		gr.Patch("/summaries/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			userID := middlewares.UserID(r.Context())
			var req types.UpdateSummaryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			if req.Content == "" {
				return nil, http.StatusBadRequest, errors.New("content is required")
			}
			summary, err := ctrl.UpdateSummary(r.Context(), chi.URLParam(r, "id"), userID, req.Content)
			if err != nil {
				status, msg := storageError(err)
				return nil, status, msg
			}
			if summary == nil {
				return nil, http.StatusNotFound, errors.New("summary not found")
			}
			return summary, http.StatusOK, nil
		}))

		gr.Delete("/summaries/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			userID := middlewares.UserID(r.Context())
			deleted, err := ctrl.DeleteSummary(r.Context(), chi.URLParam(r, "id"), userID)
			if err != nil {
				status, msg := storageError(err)
				return nil, status, msg
			}
			if !deleted {
				return nil, http.StatusNotFound, errors.New("summary not found")
			}
			return nil, http.StatusNoContent, nil
		}))
	})

	// Streaming variant: the first frame authenticates and names the URL,
	// then tokens flow as they are generated; the persisted record closes
	// the stream.
	r.HandleFunc("/summarize/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input struct {
			Token string `json:"token"`
			URL   string `json:"url"`
		}
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		userID, err := middlewares.ParseUserToken(input.Token, cfg.JWTSecret)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}

		summary, err := ctrl.SummarizeStream(ctx, userID, input.URL, func(token string) {
			payload, _ := json.Marshal(map[string]string{"type": "token", "data": token})
			conn.Write(ctx, websocket.MessageText, payload)
		})
		if err != nil {
			_, msg := pipelineError(err)
			payload, _ := json.Marshal(map[string]string{"error": msg.Error()})
			conn.Write(ctx, websocket.MessageText, payload)
			conn.Close(websocket.StatusInternalError, "pipeline error")
			return
		}

		payload, _ := json.Marshal(map[string]any{"type": "done", "summary": summary})
		conn.Write(ctx, websocket.MessageText, payload)
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}
