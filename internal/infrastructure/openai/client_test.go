package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{APIKey: "test-api-key", BaseURL: serverURL + "/v1"}, zerolog.Nop())
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{APIKey: "test-api-key"}, zerolog.Nop())

	assert.NotNil(t, client)
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, "openai", client.Name())

	custom := NewClient(Config{APIKey: "k", Model: "gpt-4o"}, zerolog.Nop())
	assert.Equal(t, "gpt-4o", custom.model)
}

func TestComplete_Success(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4.1-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"suggestions\": []}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Complete(context.Background(), domain.CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.8,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"suggestions": []}`, text)

	assert.Equal(t, DefaultModel, received["model"])
	assert.InDelta(t, 0.8, received["temperature"], 0.001)

	messages, ok := received["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "system", messages[0].(map[string]any)["content"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["content"])

	format, ok := received["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Complete(context.Background(), domain.CompletionRequest{})

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestComplete_APIError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), domain.CompletionRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
	assert.Equal(t, 1, calls)
}

func TestComplete_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Complete(ctx, domain.CompletionRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
