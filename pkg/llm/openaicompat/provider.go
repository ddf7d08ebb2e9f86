// Package openaicompat implements the OpenAI chat-completions protocol once for every
// provider that exposes an OpenAI-compatible endpoint. Variants differ only by base URL,
// default model and whether they accept image parts.
package openaicompat

import (
	"context"
	"fmt"
	"strings"

	"llm-chat-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAICompatProvider struct {
	spec   llm.Spec
	client *openai.Client
}

// Ensure OpenAICompatProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAICompatProvider{}

// NewOpenAICompatProvider binds spec to apiKey. An empty baseURL falls back to spec.BaseURL.
func NewOpenAICompatProvider(spec llm.Spec, apiKey, baseURL string) *OpenAICompatProvider {
	if baseURL == "" {
		baseURL = spec.BaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")

	return &OpenAICompatProvider{
		spec:   spec,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (p *OpenAICompatProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Reply, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.spec.DefaultModel}, options...)

	req := openai.ChatCompletionRequest{
		Model:    opts.Model,
		Messages: p.toMessages(history),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = float32(opts.Temperature)
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, llm.NewSendError(p.spec.Provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, llm.NewSendError(p.spec.Provider, fmt.Errorf("empty choices from %s api", p.spec.Provider))
	}

	reply := &llm.Reply{
		Content:  resp.Choices[0].Message.Content,
		Model:    opts.Model,
		Provider: p.spec.Provider,
	}
	if u := resp.Usage; u.TotalTokens > 0 || u.PromptTokens > 0 || u.CompletionTokens > 0 {
		reply.Usage = &llm.Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}
	return reply, nil
}

func (p *OpenAICompatProvider) toMessages(history []llm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == llm.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}

		// Content and MultiContent are mutually exclusive in the request payload.
		if !p.spec.SupportsImages || len(msg.Images) == 0 {
			out = append(out, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
			continue
		}

		parts := make([]openai.ChatMessagePart, 0, len(msg.Images)+1)
		if msg.Content != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: msg.Content,
			})
		}
		for _, img := range msg.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    img.DataURL(),
					Detail: openai.ImageURLDetailAuto,
				},
			})
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, MultiContent: parts})
	}
	return out
}
