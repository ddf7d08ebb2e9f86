package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"llm-chat-be/internal/bootstrap"
	"llm-chat-be/internal/config"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/repository/memory"
	"llm-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	err error
}

func (g *stubGateway) SendMessage(ctx context.Context, provider llm.Provider, apiKey string, history []llm.Message, model string) (*llm.Reply, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &llm.Reply{
		Content:  "echo: " + history[len(history)-1].Content,
		Model:    llm.ResolveModel(provider, model),
		Provider: provider,
	}, nil
}

func (g *stubGateway) ListModels(provider llm.Provider) ([]string, error) {
	return llm.Models(provider)
}

func newTestApp(t *testing.T, gateway llm.Gateway) *fiber.App {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.CorsAllowedOrigins = "http://localhost:5173"
	cfg.MockUser.Id = "00000000-0000-0000-0000-000000000001"
	cfg.MockUser.Username = "demo"
	cfg.MockUser.Password = "demo"

	container, err := bootstrap.NewContainer(cfg, bootstrap.Dependencies{
		UowFactory: memory.NewRepositoryFactory(memory.NewStore()),
		Gateway:    gateway,
		Logger:     logger.NewNopLogger(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, container.Start(ctx, cfg))
	t.Cleanup(func() {
		cancel()
		_ = container.Close()
	})

	return New(cfg, container).GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

type errorBody struct {
	Success   bool            `json:"success"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &stubGateway{})

	status, _ := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProviders(t *testing.T) {
	app := newTestApp(t, &stubGateway{})

	status, raw := doJSON(t, app, http.MethodGet, "/api/providers/google/models", nil)
	require.Equal(t, http.StatusOK, status)
	models := decode[map[string][]string](t, raw)
	assert.Contains(t, models["models"], "gemini-2.5-flash")

	status, raw = doJSON(t, app, http.MethodGet, "/api/providers", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, raw), len(llm.Providers()))

	status, raw = doJSON(t, app, http.MethodGet, "/api/providers/ollama/models", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNSUPPORTED_PROVIDER", decode[errorBody](t, raw).ErrorCode)
}

func TestApiKeys(t *testing.T) {
	app := newTestApp(t, &stubGateway{})

	status, raw := doJSON(t, app, http.MethodPost, "/api/api-keys", map[string]string{
		"provider": "openai",
		"keyValue": "sk-proj-abcdefghijklmnop",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	key := decode[map[string]interface{}](t, raw)
	assert.Equal(t, "sk-proj-••••••••", key["keyValue"])

	status, raw = doJSON(t, app, http.MethodGet, "/api/api-keys", nil)
	require.Equal(t, http.StatusOK, status)
	keys := decode[[]map[string]interface{}](t, raw)
	require.Len(t, keys, 1)
	assert.NotContains(t, string(raw), "abcdefghijklmnop")

	status, raw = doJSON(t, app, http.MethodPost, "/api/api-keys", map[string]string{"provider": "ollama", "keyValue": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, decode[errorBody](t, raw).Success)

	status, raw = doJSON(t, app, http.MethodDelete, "/api/api-keys/openai", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[errorBody](t, raw).Success)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/api-keys/openai", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConversationFlow(t *testing.T) {
	app := newTestApp(t, &stubGateway{})

	status, raw := doJSON(t, app, http.MethodPost, "/api/conversations", map[string]string{"provider": "anthropic"})
	require.Equal(t, http.StatusOK, status, string(raw))
	conversation := decode[map[string]interface{}](t, raw)
	id := conversation["id"].(string)
	assert.Equal(t, "New Chat", conversation["title"])

	// No key yet: the user turn stays, the error carries it.
	status, raw = doJSON(t, app, http.MethodPost, "/api/conversations/"+id+"/messages", map[string]string{"content": "Hello"})
	require.Equal(t, http.StatusBadRequest, status)
	failure := decode[errorBody](t, raw)
	assert.Equal(t, "PROVIDER_NOT_CONFIGURED", failure.ErrorCode)
	assert.Contains(t, string(failure.Data), "userMessage")

	status, _ = doJSON(t, app, http.MethodPost, "/api/api-keys", map[string]string{"provider": "anthropic", "keyValue": "sk-ant-0123456789"})
	require.Equal(t, http.StatusOK, status)

	status, raw = doJSON(t, app, http.MethodPost, "/api/conversations/"+id+"/messages", map[string]string{"content": "Again"})
	require.Equal(t, http.StatusOK, status, string(raw))
	exchange := decode[map[string]map[string]interface{}](t, raw)
	assert.Equal(t, "Again", exchange["userMessage"]["content"])
	assert.Equal(t, "echo: Again", exchange["assistantMessage"]["content"])

	status, raw = doJSON(t, app, http.MethodGet, "/api/conversations/"+id+"/messages", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, raw), 3)

	status, raw = doJSON(t, app, http.MethodPatch, "/api/conversations/"+id, map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "Renamed", decode[map[string]interface{}](t, raw)["title"])

	status, raw = doJSON(t, app, http.MethodGet, "/api/conversations", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, raw), 1)

	status, raw = doJSON(t, app, http.MethodDelete, "/api/conversations/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[errorBody](t, raw).Success)

	status, _ = doJSON(t, app, http.MethodGet, "/api/conversations/"+id+"/messages", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConversationErrors(t *testing.T) {
	app := newTestApp(t, &stubGateway{})

	status, raw := doJSON(t, app, http.MethodPost, "/api/conversations", map[string]string{"provider": "ollama"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, raw).ErrorCode)

	req := httptest.NewRequest(http.MethodPost, "/api/conversations", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, _ = doJSON(t, app, http.MethodGet, "/api/conversations/00000000-0000-0000-0000-0000000000ff/messages", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodPatch, "/api/conversations/not-a-uuid", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSendMessage_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected string
	}{
		{"upstream", errors.New("invalid api key"), http.StatusInternalServerError, "UPSTREAM_ERROR"},
		{"timeout", &llm.SendError{Provider: llm.ProviderOpenAI, Message: "deadline", Timeout: true}, http.StatusGatewayTimeout, "PROVIDER_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &stubGateway{err: tt.err})

			_, raw := doJSON(t, app, http.MethodPost, "/api/conversations", map[string]string{"provider": "openai"})
			id := decode[map[string]interface{}](t, raw)["id"].(string)
			doJSON(t, app, http.MethodPost, "/api/api-keys", map[string]string{"provider": "openai", "keyValue": "sk-test-123456"})

			status, raw := doJSON(t, app, http.MethodPost, "/api/conversations/"+id+"/messages", map[string]string{"content": "Hello"})
			assert.Equal(t, tt.status, status)
			body := decode[errorBody](t, raw)
			assert.Equal(t, tt.expected, body.ErrorCode)
			assert.Contains(t, string(body.Data), "userMessage")
		})
	}
}
