package factory

import (
	"fmt"

	"llm-chat-be/pkg/llm"
	"llm-chat-be/pkg/llm/anthropic"
	"llm-chat-be/pkg/llm/gemini"
	"llm-chat-be/pkg/llm/openaicompat"
)

// NewLLMProvider binds apiKey to the implementation serving providerType.
// baseURL overrides the catalog endpoint when non-empty.
func NewLLMProvider(providerType llm.Provider, apiKey, baseURL string) (llm.LLMProvider, error) {
	spec, ok := llm.Lookup(providerType)
	if !ok {
		return nil, &llm.ErrUnsupportedProvider{Value: string(providerType)}
	}

	switch {
	case spec.OpenAICompatible:
		return openaicompat.NewOpenAICompatProvider(spec, apiKey, baseURL), nil
	case spec.Provider == llm.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(spec, apiKey, baseURL)
	case spec.Provider == llm.ProviderGoogle:
		return gemini.NewGeminiProvider(spec, apiKey, baseURL), nil
	default:
		return nil, fmt.Errorf("no implementation for LLM provider: %s", providerType)
	}
}
