package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "system", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": " 4 "}}],
			"usage": {"prompt_tokens": 280, "completion_tokens": 1}
		}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini", server.URL, 5)
	resp, err := p.Complete(context.Background(), Request{
		System: "Odpovídej pouze číslem 1–5.",
		Prompt: "Titulek: Novela",
	})
	require.NoError(t, err)
	require.Equal(t, "4", resp.Text)
	require.Equal(t, 280, resp.Usage.InputTokens)
	require.Equal(t, 1, resp.Usage.OutputTokens)
}

func TestOpenAIProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit", "message": "slow down"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini", server.URL, 5)
	_, err := p.Complete(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [], "usage": {"prompt_tokens": 1, "completion_tokens": 0}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini", server.URL, 5)
	_, err := p.Complete(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)
}
