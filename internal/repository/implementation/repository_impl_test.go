package implementation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"llm-chat-be/internal/entity"
	"llm-chat-be/pkg/database"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSqliteDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", true)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestConversationRepositoryImpl_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	conversations := NewConversationRepository(db)
	messages := NewMessageRepository(db)
	owner := uuid.New()

	first := &entity.Conversation{UserId: &owner, Title: "first", Provider: llm.ProviderOpenAI, Model: "gpt-4o"}
	require.NoError(t, conversations.Create(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second := &entity.Conversation{UserId: &owner, Title: "second", Provider: llm.ProviderGoogle, Model: "gemini-2.5-flash"}
	require.NoError(t, conversations.Create(ctx, second))

	list, err := conversations.FindAllByUserId(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.Id, list[0].Id)

	time.Sleep(2 * time.Millisecond)
	touched, err := conversations.Touch(ctx, first.Id)
	require.NoError(t, err)
	assert.True(t, touched)

	list, err = conversations.FindAllByUserId(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, first.Id, list[0].Id)

	title := "renamed"
	updated, err := conversations.Update(ctx, second.Id, entity.ConversationPatch{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "gemini-2.5-flash", updated.Model)

	require.NoError(t, messages.Create(ctx, &entity.Message{ConversationId: first.Id, Role: entity.MessageRoleUser, Content: "hi"}))

	deleted, err := conversations.Delete(ctx, first.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	remaining, err := messages.FindAllByConversationId(ctx, first.Id)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	deleted, err = conversations.Delete(ctx, first.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	missing, err := conversations.FindById(ctx, first.Id)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepositoryImpl_MetadataAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(openTestDB(t))
	conversationId := uuid.New()
	stale := time.Now().Add(-time.Hour)

	question := &entity.Message{
		ConversationId: conversationId,
		Role:           entity.MessageRoleUser,
		Content:        "question",
		Metadata:       entity.MessageMetadata{Images: []string{"data:image/png;base64,AAAA"}},
	}
	reply := &entity.Message{
		ConversationId: conversationId,
		Role:           entity.MessageRoleAssistant,
		Content:        "answer",
		Metadata:       entity.MessageMetadata{Usage: &llm.Usage{PromptTokens: 3, CompletionTokens: 5, TotalTokens: 8}},
		// Ignored: Create always stamps the current time.
		CreatedAt: stale,
	}
	require.NoError(t, repo.Create(ctx, question))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Create(ctx, reply))
	assert.True(t, reply.CreatedAt.After(question.CreatedAt))

	list, err := repo.FindAllByConversationId(ctx, conversationId)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "question", list[0].Content)
	assert.Equal(t, []string{"data:image/png;base64,AAAA"}, list[0].Metadata.Images)
	require.NotNil(t, list[1].Metadata.Usage)
	assert.Equal(t, 8, list[1].Metadata.Usage.TotalTokens)

	updated, err := repo.UpdateContent(ctx, question.Id, "edited")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "edited", updated.Content)

	missing, err := repo.UpdateContent(ctx, uuid.New(), "x")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, reply.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestMessageRepositoryImpl_DeleteByConversationId(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(openTestDB(t))
	target := uuid.New()
	other := uuid.New()

	require.NoError(t, repo.DeleteByConversationId(ctx, target))

	for _, id := range []uuid.UUID{target, target, other} {
		require.NoError(t, repo.Create(ctx, &entity.Message{ConversationId: id, Role: entity.MessageRoleUser, Content: "hi"}))
	}

	require.NoError(t, repo.DeleteByConversationId(ctx, target))

	remaining, err := repo.FindAllByConversationId(ctx, target)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	remaining, err = repo.FindAllByConversationId(ctx, other)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestApiKeyRepositoryImpl_ReplaceActive(t *testing.T) {
	ctx := context.Background()
	repo := NewApiKeyRepository(openTestDB(t))
	userId := uuid.New()

	require.NoError(t, repo.ReplaceActive(ctx, &entity.ApiKey{UserId: userId, Provider: llm.ProviderAnthropic, KeyValue: "old"}))
	require.NoError(t, repo.ReplaceActive(ctx, &entity.ApiKey{UserId: userId, Provider: llm.ProviderAnthropic, KeyValue: "new"}))

	active, err := repo.FindActive(ctx, userId, llm.ProviderAnthropic)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "new", active.KeyValue)

	history, err := repo.FindHistory(ctx, userId, llm.ProviderAnthropic)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	all, err := repo.FindAllActiveByUserId(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := repo.DeleteActive(ctx, userId, llm.ProviderAnthropic)
	require.NoError(t, err)
	assert.True(t, deleted)

	active, err = repo.FindActive(ctx, userId, llm.ProviderAnthropic)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestApiKeyRepositoryImpl_ReplaceActiveConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewApiKeyRepository(openTestDB(t))
	userId := uuid.New()

	const writers = 30
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- repo.ReplaceActive(ctx, &entity.ApiKey{UserId: userId, Provider: llm.ProviderOpenAI, KeyValue: fmt.Sprintf("key-%d", n)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	history, err := repo.FindHistory(ctx, userId, llm.ProviderOpenAI)
	require.NoError(t, err)
	require.Len(t, history, writers)

	activeCount := 0
	for _, k := range history {
		if k.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	all, err := repo.FindAllActiveByUserId(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepositoryImpl(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &entity.User{Username: "demo", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByUsername(ctx, "demo")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)

	ok, err := repo.UpdatePassword(ctx, user.Id, "rotated")
	require.NoError(t, err)
	assert.True(t, ok)

	none, err := repo.FindByUsername(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, none)
}
