package llm

import (
	"context"
)

// Provider identifies one of the supported hosted LLM APIs
type Provider string

const (
	ProviderOpenAI      Provider = "openai"
	ProviderAnthropic   Provider = "anthropic"
	ProviderGoogle      Provider = "google"
	ProviderHuggingFace Provider = "huggingface"
	ProviderCerebras    Provider = "cerebras"
	ProviderSambaNova   Provider = "sambanova"
	ProviderMistral     Provider = "mistral"
	ProviderCohere      Provider = "cohere"
	ProviderXAI         Provider = "xai"
	ProviderPerplexity  Provider = "perplexity"
	ProviderTogether    Provider = "together"
	ProviderFireworks   Provider = "fireworks"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Image is a base64 payload tagged with its media type (e.g. "image/png")
type Image struct {
	MediaType string
	Data      string
}

// Message represents a chat turn in a provider-agnostic format
type Message struct {
	Role    string // "user" or "assistant"
	Content string
	Images  []Image
}

type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Reply is the normalized result of a chat call, independent of the provider that produced it.
// Usage is nil when the provider does not report token counts.
type Reply struct {
	Content  string
	Model    string
	Provider Provider
	Usage    *Usage
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions folds opts over a copy of defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, o := range opts {
		o(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend bound to one credential
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the normalized reply
	Chat(ctx context.Context, history []Message, options ...Option) (*Reply, error)
}

// Gateway dispatches a chat call to the right provider implementation.
type Gateway interface {
	SendMessage(ctx context.Context, provider Provider, apiKey string, history []Message, model string) (*Reply, error)
	ListModels(provider Provider) ([]string, error)
}
