package anthropic

import (
	"context"
	"fmt"
	"strings"

	"llm-chat-be/pkg/llm"

	"github.com/tmc/langchaingo/llms"
	lcanthropic "github.com/tmc/langchaingo/llms/anthropic"
)

const defaultMaxTokens = 4096

type AnthropicProvider struct {
	spec  llm.Spec
	model llms.Model
}

// Ensure AnthropicProvider implements LLMProvider
var _ llm.LLMProvider = &AnthropicProvider{}

// NewAnthropicProvider builds a messages-API client. An empty baseURL keeps the library default.
func NewAnthropicProvider(spec llm.Spec, apiKey, baseURL string) (*AnthropicProvider, error) {
	opts := []lcanthropic.Option{
		lcanthropic.WithToken(apiKey),
		lcanthropic.WithModel(spec.DefaultModel),
	}
	if baseURL != "" {
		opts = append(opts, lcanthropic.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}

	client, err := lcanthropic.New(opts...)
	if err != nil {
		return nil, llm.NewSendError(spec.Provider, err)
	}
	return &AnthropicProvider{spec: spec, model: client}, nil
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Reply, error) {
	opts := llm.ApplyOptions(llm.Options{
		Model:     p.spec.DefaultModel,
		MaxTokens: defaultMaxTokens,
	}, options...)

	callOpts := []llms.CallOption{
		llms.WithModel(opts.Model),
		llms.WithMaxTokens(opts.MaxTokens),
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}

	contents, err := toMessageContents(history)
	if err != nil {
		return nil, llm.NewSendError(p.spec.Provider, err)
	}

	resp, err := p.model.GenerateContent(ctx, contents, callOpts...)
	if err != nil {
		return nil, llm.NewSendError(p.spec.Provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, llm.NewSendError(p.spec.Provider, fmt.Errorf("empty content from anthropic api"))
	}

	var sb strings.Builder
	for _, c := range resp.Choices {
		sb.WriteString(c.Content)
	}

	return &llm.Reply{
		Content:  sb.String(),
		Model:    opts.Model,
		Provider: p.spec.Provider,
		Usage:    usageFromGenerationInfo(resp.Choices[0].GenerationInfo),
	}, nil
}

func toMessageContents(history []llm.Message) ([]llms.MessageContent, error) {
	out := make([]llms.MessageContent, 0, len(history))
	for _, msg := range history {
		if msg.Role == llm.RoleAssistant {
			out = append(out, llms.MessageContent{
				Role:  llms.ChatMessageTypeAI,
				Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
			})
			continue
		}

		// Text goes first; each image becomes a base64 image block after it.
		parts := make([]llms.ContentPart, 0, len(msg.Images)+1)
		if msg.Content != "" || len(msg.Images) == 0 {
			parts = append(parts, llms.TextPart(msg.Content))
		}
		for _, img := range msg.Images {
			data, err := img.Bytes()
			if err != nil {
				return nil, fmt.Errorf("decode image: %w", err)
			}
			parts = append(parts, llms.BinaryPart(img.MediaType, data))
		}
		out = append(out, llms.MessageContent{
			Role:  llms.ChatMessageTypeHuman,
			Parts: parts,
		})
	}
	return out, nil
}

func usageFromGenerationInfo(info map[string]any) *llm.Usage {
	in, okIn := toInt(info["InputTokens"])
	outTokens, okOut := toInt(info["OutputTokens"])
	if !okIn && !okOut {
		return nil
	}
	return &llm.Usage{
		PromptTokens:     in,
		CompletionTokens: outTokens,
		TotalTokens:      in + outTokens,
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
