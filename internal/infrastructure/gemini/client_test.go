package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), Config{APIKey: "test-api-key", BaseURL: serverURL}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background(), Config{APIKey: "test-api-key"}, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, "gemini", client.Name())
}

func TestComplete_Success(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent"), r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "{\"suggestions\": []}"}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15}
		}`))
	}))
	defer server.Close()

	text, err := newTestClient(t, server.URL).Complete(context.Background(), domain.CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.8,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"suggestions": []}`, text)

	config, ok := received["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", config["responseMimeType"])
	assert.InDelta(t, 0.8, config["temperature"], 0.001)

	instruction, ok := received["systemInstruction"].(map[string]any)
	require.True(t, ok)
	parts := instruction["parts"].([]any)
	assert.Equal(t, "system", parts[0].(map[string]any)["text"])
}

func TestComplete_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	text, err := newTestClient(t, server.URL).Complete(context.Background(), domain.CompletionRequest{UserPrompt: "user"})

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Complete(context.Background(), domain.CompletionRequest{UserPrompt: "user"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}
