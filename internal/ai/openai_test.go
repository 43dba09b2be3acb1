package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, status int, content string, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if gotBody != nil {
			_ = json.NewDecoder(r.Body).Decode(gotBody)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "llama-3.3-70b-versatile",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var body map[string]any
	srv := newCompletionServer(t, http.StatusOK, "```json\n{\"1\":[]}\n```", &body)
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL+"/v1/", "llama-3.3-70b-versatile", 0.4)
	out, err := p.Complete(context.Background(), "plan my trip")
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"1\":[]}\n```", out)
	assert.Equal(t, "llama-3.3-70b-versatile", p.Model())

	assert.Equal(t, "llama-3.3-70b-versatile", body["model"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "plan my trip", msg["content"])
}

func TestOpenAIProvider_EmptyCompletion(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "   ", nil)
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL+"/v1", "m", 0)
	_, err := p.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCompletion))
}

func TestOpenAIProvider_UpstreamError(t *testing.T) {
	srv := newCompletionServer(t, http.StatusTooManyRequests, "", nil)
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL+"/v1", "m", 0)
	_, err := p.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyCompletion))
}
