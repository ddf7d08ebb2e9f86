package service

import (
	"context"
	"testing"

	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestConversationService_Create(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.conversations.Create(ctx, env.userId, &dto.CreateConversationRequest{Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, "New Chat", created.Title)
	assert.Equal(t, "gemini-2.5-flash", created.Model)
	require.NotNil(t, created.UserId)
	assert.Equal(t, env.userId, *created.UserId)

	named, err := env.conversations.Create(ctx, env.userId, &dto.CreateConversationRequest{
		Title:    "  Trip plans ",
		Provider: "openai",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Equal(t, "Trip plans", named.Title)
	assert.Equal(t, "gpt-4o-mini", named.Model)

	_, err = env.conversations.Create(ctx, env.userId, &dto.CreateConversationRequest{Provider: "ollama"})
	assert.True(t, apperror.IsKind(err, apperror.KindUnsupportedProvider))
}

func TestConversationService_GetAll_OnlyOwn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	mine := env.createConversation(t, "openai")
	_, err := env.conversations.Create(ctx, uuid.New(), &dto.CreateConversationRequest{Provider: "openai"})
	require.NoError(t, err)

	list, err := env.conversations.GetAll(ctx, env.userId)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.Id, list[0].Id)

	empty, err := env.conversations.GetAll(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestConversationService_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	conversation := env.createConversation(t, "openai")

	renamed, err := env.conversations.Update(ctx, env.userId, &dto.UpdateConversationRequest{Id: conversation.Id, Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)
	assert.Equal(t, "gpt-4o", renamed.Model)

	switched, err := env.conversations.Update(ctx, env.userId, &dto.UpdateConversationRequest{Id: conversation.Id, Provider: strPtr("anthropic")})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", switched.Provider)
	assert.NotEqual(t, "gpt-4o", switched.Model)
	assert.Equal(t, "Renamed", switched.Title)

	explicit, err := env.conversations.Update(ctx, env.userId, &dto.UpdateConversationRequest{
		Id:       conversation.Id,
		Provider: strPtr("google"),
		Model:    strPtr("gemini-2.5-pro"),
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", explicit.Model)

	_, err = env.conversations.Update(ctx, env.userId, &dto.UpdateConversationRequest{Id: conversation.Id, Title: strPtr("   ")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = env.conversations.Update(ctx, env.userId, &dto.UpdateConversationRequest{Id: conversation.Id, Provider: strPtr("nope")})
	assert.True(t, apperror.IsKind(err, apperror.KindUnsupportedProvider))

	_, err = env.conversations.Update(ctx, uuid.New(), &dto.UpdateConversationRequest{Id: conversation.Id, Title: strPtr("x")})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestConversationService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	conversation := env.createConversation(t, "openai")
	env.setKey(t, "openai", "sk-test-key")
	_, err := env.messages.Send(ctx, env.userId, conversation.Id, &dto.SendMessageRequest{Content: "Hello"})
	require.NoError(t, err)

	err = env.conversations.Delete(ctx, uuid.New(), conversation.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	require.NoError(t, env.conversations.Delete(ctx, env.userId, conversation.Id))

	_, err = env.conversations.GetMessages(ctx, env.userId, conversation.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = env.conversations.Delete(ctx, env.userId, conversation.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
