package llm

import (
	"fmt"
	"strings"
)

// Spec describes a provider entry of the static catalog.
type Spec struct {
	Provider       Provider
	DefaultModel   string
	Models         []string
	SupportsImages bool

	// BaseURL is only set for providers speaking the OpenAI-compatible protocol.
	BaseURL          string
	OpenAICompatible bool
}

var catalog = []Spec{
	{
		Provider:         ProviderOpenAI,
		DefaultModel:     "gpt-4o",
		Models:           []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
		SupportsImages:   true,
		BaseURL:          "https://api.openai.com/v1",
		OpenAICompatible: true,
	},
	{
		Provider:       ProviderAnthropic,
		DefaultModel:   "claude-3-5-sonnet-20241022",
		Models:         []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022", "claude-3-opus-20240229"},
		SupportsImages: true,
	},
	{
		Provider:       ProviderGoogle,
		DefaultModel:   "gemini-2.5-flash",
		Models:         []string{"gemini-2.5-pro", "gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-pro"},
		SupportsImages: true,
	},
	{
		Provider:     ProviderHuggingFace,
		DefaultModel: "meta-llama/Llama-3.1-8B-Instruct",
		Models: []string{
			"meta-llama/Llama-3.1-8B-Instruct",
			"mistralai/Mistral-7B-Instruct-v0.3",
			"Qwen/Qwen2.5-72B-Instruct",
		},
		BaseURL:          "https://router.huggingface.co/v1",
		OpenAICompatible: true,
	},
	{
		Provider:         ProviderCerebras,
		DefaultModel:     "llama3.1-8b",
		Models:           []string{"llama3.1-8b", "llama3.1-70b"},
		BaseURL:          "https://api.cerebras.ai/v1",
		OpenAICompatible: true,
	},
	{
		Provider:     ProviderSambaNova,
		DefaultModel: "Meta-Llama-3.1-8B-Instruct",
		Models: []string{
			"Meta-Llama-3.1-8B-Instruct",
			"Meta-Llama-3.1-70B-Instruct",
			"Meta-Llama-3.1-405B-Instruct",
		},
		BaseURL:          "https://api.sambanova.ai/v1",
		OpenAICompatible: true,
	},
	{
		Provider:         ProviderMistral,
		DefaultModel:     "mistral-large-latest",
		Models:           []string{"mistral-large-latest", "mistral-small-latest", "pixtral-large-latest", "codestral-latest"},
		SupportsImages:   true,
		BaseURL:          "https://api.mistral.ai/v1",
		OpenAICompatible: true,
	},
	{
		Provider:         ProviderCohere,
		DefaultModel:     "command-r-plus",
		Models:           []string{"command-r-plus", "command-r"},
		BaseURL:          "https://api.cohere.ai/compatibility/v1",
		OpenAICompatible: true,
	},
	{
		Provider:         ProviderXAI,
		DefaultModel:     "grok-2-latest",
		Models:           []string{"grok-2-latest", "grok-2-vision-latest"},
		SupportsImages:   true,
		BaseURL:          "https://api.x.ai/v1",
		OpenAICompatible: true,
	},
	{
		Provider:         ProviderPerplexity,
		DefaultModel:     "sonar",
		Models:           []string{"sonar", "sonar-pro"},
		BaseURL:          "https://api.perplexity.ai",
		OpenAICompatible: true,
	},
	{
		Provider:     ProviderTogether,
		DefaultModel: "meta-llama/Llama-3.3-70B-Instruct-Turbo",
		Models: []string{
			"meta-llama/Llama-3.3-70B-Instruct-Turbo",
			"Qwen/Qwen2.5-72B-Instruct-Turbo",
		},
		BaseURL:          "https://api.together.xyz/v1",
		OpenAICompatible: true,
	},
	{
		Provider:     ProviderFireworks,
		DefaultModel: "accounts/fireworks/models/llama-v3p1-70b-instruct",
		Models: []string{
			"accounts/fireworks/models/llama-v3p1-70b-instruct",
			"accounts/fireworks/models/llama-v3p1-8b-instruct",
		},
		BaseURL:          "https://api.fireworks.ai/inference/v1",
		OpenAICompatible: true,
	},
}

var catalogIndex = func() map[Provider]Spec {
	idx := make(map[Provider]Spec, len(catalog))
	for _, s := range catalog {
		idx[s.Provider] = s
	}
	return idx
}()

// ErrUnsupportedProvider is returned for values outside the closed provider set.
type ErrUnsupportedProvider struct {
	Value string
}

func (e *ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported provider: %q", e.Value)
}

// ParseProvider validates a raw provider name against the closed set.
func ParseProvider(raw string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := catalogIndex[p]; !ok {
		return "", &ErrUnsupportedProvider{Value: raw}
	}
	return p, nil
}

func (p Provider) Valid() bool {
	_, ok := catalogIndex[p]
	return ok
}

func (p Provider) String() string {
	return string(p)
}

// Lookup returns the catalog entry of p.
func Lookup(p Provider) (Spec, bool) {
	s, ok := catalogIndex[p]
	return s, ok
}

// DefaultModel returns the canonical default model of p, or "" for unknown providers.
func DefaultModel(p Provider) string {
	return catalogIndex[p].DefaultModel
}

// ResolveModel returns model, falling back to the provider default when blank.
func ResolveModel(p Provider, model string) string {
	if m := strings.TrimSpace(model); m != "" {
		return m
	}
	return DefaultModel(p)
}

// Providers lists every catalog entry in declaration order.
func Providers() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)
	return out
}

// Models returns a copy of the static model list of p.
func Models(p Provider) ([]string, error) {
	s, ok := catalogIndex[p]
	if !ok {
		return nil, &ErrUnsupportedProvider{Value: string(p)}
	}
	out := make([]string, len(s.Models))
	copy(out, s.Models)
	return out, nil
}
