package service

import (
	"context"
	"sync"
	"testing"

	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/repository/memory"
	"llm-chat-be/internal/repository/unitofwork"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu      sync.Mutex
	reply   *llm.Reply
	err     error
	calls   int
	apiKey  string
	model   string
	history []llm.Message
	// onSend runs during the provider round-trip.
	onSend func()
}

func (g *fakeGateway) SendMessage(ctx context.Context, provider llm.Provider, apiKey string, history []llm.Message, model string) (*llm.Reply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	g.apiKey = apiKey
	g.model = model
	g.history = append([]llm.Message(nil), history...)
	if g.onSend != nil {
		g.onSend()
	}
	if g.err != nil {
		return nil, g.err
	}
	reply := *g.reply
	reply.Provider = provider
	if reply.Model == "" {
		reply.Model = llm.ResolveModel(provider, model)
	}
	return &reply, nil
}

func (g *fakeGateway) ListModels(provider llm.Provider) ([]string, error) {
	return llm.Models(provider)
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

type testEnv struct {
	uowFactory    unitofwork.RepositoryFactory
	gateway       *fakeGateway
	publisher     *fakePublisher
	conversations IConversationService
	messages      IMessageService
	apiKeys       IApiKeyService
	userId        uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	uowFactory := memory.NewRepositoryFactory(memory.NewStore())
	gateway := &fakeGateway{reply: &llm.Reply{
		Content: "Hi there",
		Usage:   &llm.Usage{PromptTokens: 4, CompletionTokens: 2, TotalTokens: 6},
	}}
	publisher := &fakePublisher{}
	log := logger.NewNopLogger()

	return &testEnv{
		uowFactory:    uowFactory,
		gateway:       gateway,
		publisher:     publisher,
		conversations: NewConversationService(uowFactory),
		messages:      NewMessageService(uowFactory, gateway, publisher, log),
		apiKeys:       NewApiKeyService(uowFactory),
		userId:        uuid.New(),
	}
}

func (e *testEnv) createConversation(t *testing.T, provider string) *dto.ConversationResponse {
	t.Helper()
	conversation, err := e.conversations.Create(context.Background(), e.userId, &dto.CreateConversationRequest{Provider: provider})
	require.NoError(t, err)
	return conversation
}

func (e *testEnv) setKey(t *testing.T, provider, key string) {
	t.Helper()
	_, err := e.apiKeys.Set(context.Background(), e.userId, &dto.SetApiKeyRequest{Provider: provider, KeyValue: key})
	require.NoError(t, err)
}
