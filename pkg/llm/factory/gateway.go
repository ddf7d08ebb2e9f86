package factory

import (
	"context"
	"errors"
	"time"

	"llm-chat-be/pkg/llm"
)

const DefaultTimeout = 120 * time.Second

type GatewayConfig struct {
	// Timeout bounds every outbound call. Zero means DefaultTimeout.
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	// BaseURLs overrides catalog endpoints per provider.
	BaseURLs map[llm.Provider]string
}

// ProviderGateway builds a client per call from the caller's credential and makes
// a single attempt. No retry, no caching.
type ProviderGateway struct {
	cfg GatewayConfig
}

var _ llm.Gateway = &ProviderGateway{}

func NewGateway(cfg GatewayConfig) *ProviderGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &ProviderGateway{cfg: cfg}
}

func (g *ProviderGateway) SendMessage(
	ctx context.Context,
	provider llm.Provider,
	apiKey string,
	history []llm.Message,
	model string,
) (*llm.Reply, error) {
	if !provider.Valid() {
		return nil, &llm.ErrUnsupportedProvider{Value: string(provider)}
	}

	client, err := NewLLMProvider(provider, apiKey, g.cfg.BaseURLs[provider])
	if err != nil {
		return nil, llm.NewSendError(provider, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	opts := []llm.Option{llm.WithModel(llm.ResolveModel(provider, model))}
	if g.cfg.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(g.cfg.MaxTokens))
	}
	if g.cfg.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(g.cfg.Temperature))
	}

	reply, err := client.Chat(callCtx, history, opts...)
	if err != nil {
		sendErr := llm.NewSendError(provider, err)
		// Some clients flatten the context error into a string.
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			sendErr.Timeout = true
		}
		return nil, sendErr
	}
	return reply, nil
}

func (g *ProviderGateway) ListModels(provider llm.Provider) ([]string, error) {
	return llm.Models(provider)
}
