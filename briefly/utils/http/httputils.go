// briefly/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func PostJSON(ctx context.Context, url string, body interface{}, resp interface{}) error {
	return postJSON(ctx, url, "", body, resp)
}

// PostJSONWithAuth is PostJSON with a Bearer token on the request.
func PostJSONWithAuth(ctx context.Context, url, token string, body interface{}, resp interface{}) error {
	return postJSON(ctx, url, token, body, resp)
}

func postJSON(ctx context.Context, url, token string, body interface{}, resp interface{}) error {
	r, err := post(ctx, url, token, body)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(r.Body, 4096))
		return fmt.Errorf("bad status: %d: %s", r.StatusCode, bytes.TrimSpace(payload))
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

func PostStream(ctx context.Context, url string, body interface{}) (io.ReadCloser, error) {
	return postStream(ctx, url, "", body)
}

// PostStreamWithAuth returns the raw response body for SSE/chunked reads.
// The caller owns the returned ReadCloser.
func PostStreamWithAuth(ctx context.Context, url, token string, body interface{}) (io.ReadCloser, error) {
	return postStream(ctx, url, token, body)
}

func postStream(ctx context.Context, url, token string, body interface{}) (io.ReadCloser, error) {
	r, err := post(ctx, url, token, body)
	if err != nil {
		return nil, err
	}
	if r.StatusCode != http.StatusOK {
		defer r.Body.Close()
		payload, _ := io.ReadAll(io.LimitReader(r.Body, 4096))
		return nil, fmt.Errorf("bad status: %d: %s", r.StatusCode, bytes.TrimSpace(payload))
	}
	return r.Body, nil
}

func post(ctx context.Context, url, token string, body interface{}) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return http.DefaultClient.Do(req)
}
