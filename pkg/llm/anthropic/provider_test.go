package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"llm-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestAnthropicProvider_Chat(t *testing.T) {
	spec, _ := llm.Lookup(llm.ProviderAnthropic)

	var (
		gotPath string
		gotKey  string
		gotBody map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-20241022",
			"content": [{"type": "text", "text": "Bonjour"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 9, "output_tokens": 4}
		}`))
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(spec, "ant-key", srv.URL+"/v1")
	require.NoError(t, err)

	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
		{Role: llm.RoleAssistant, Content: "Hi"},
		{Role: llm.RoleUser, Content: "Translate"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bonjour", reply.Content)
	assert.Equal(t, "claude-3-5-sonnet-20241022", reply.Model)
	assert.Equal(t, llm.ProviderAnthropic, reply.Provider)
	if assert.NotNil(t, reply.Usage) {
		assert.Equal(t, 13, reply.Usage.TotalTokens)
	}

	assert.True(t, strings.HasSuffix(gotPath, "/messages"), gotPath)
	assert.Equal(t, "ant-key", gotKey)
	assert.Equal(t, "claude-3-5-sonnet-20241022", gotBody["model"])
	assert.Len(t, gotBody["messages"], 3)
}

func TestAnthropicProvider_ChatSendsImageBlocks(t *testing.T) {
	spec, _ := llm.Lookup(llm.ProviderAnthropic)

	var gotBody struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_02",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-20241022",
			"content": [{"type": "text", "text": "A cat"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 2}
		}`))
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(spec, "ant-key", srv.URL+"/v1")
	require.NoError(t, err)

	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "What is this?", Images: []llm.Image{{MediaType: "image/png", Data: "aGVsbG8="}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "A cat", reply.Content)

	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)

	var blocks []map[string]interface{}
	require.NoError(t, json.Unmarshal(gotBody.Messages[0].Content, &blocks))
	require.Len(t, blocks, 2)

	assert.Equal(t, "text", blocks[0]["type"])
	assert.Equal(t, "What is this?", blocks[0]["text"])

	assert.Equal(t, "image", blocks[1]["type"])
	source, ok := blocks[1]["source"].(map[string]interface{})
	require.True(t, ok, "image block carries a source object")
	assert.Equal(t, "base64", source["type"])
	assert.Equal(t, "image/png", source["media_type"])
	assert.Equal(t, "aGVsbG8=", source["data"])
}

func TestToMessageContents(t *testing.T) {
	contents, err := toMessageContents([]llm.Message{
		{Role: llm.RoleUser, Content: "see", Images: []llm.Image{{MediaType: "image/png", Data: "aGVsbG8="}}},
		{Role: llm.RoleAssistant, Content: "ok"},
		{Role: llm.RoleUser, Images: []llm.Image{{MediaType: "image/jpeg", Data: "aGVsbG8="}}},
	})
	require.NoError(t, err)
	require.Len(t, contents, 3)

	require.Len(t, contents[0].Parts, 2)
	assert.Equal(t, llms.TextContent{Text: "see"}, contents[0].Parts[0])
	assert.Equal(t, llms.BinaryContent{MIMEType: "image/png", Data: []byte("hello")}, contents[0].Parts[1])

	assert.Len(t, contents[1].Parts, 1)

	// image-only turns carry no empty text block
	require.Len(t, contents[2].Parts, 1)
	assert.IsType(t, llms.BinaryContent{}, contents[2].Parts[0])

	_, err = toMessageContents([]llm.Message{
		{Role: llm.RoleUser, Content: "bad", Images: []llm.Image{{MediaType: "image/png", Data: "@@"}}},
	})
	assert.Error(t, err)
}

func TestUsageFromGenerationInfo(t *testing.T) {
	assert.Nil(t, usageFromGenerationInfo(map[string]any{}))

	usage := usageFromGenerationInfo(map[string]any{"InputTokens": 3, "OutputTokens": float64(2)})
	require.NotNil(t, usage)
	assert.Equal(t, 5, usage.TotalTokens)
}
