package contract

import (
	"context"

	"llm-chat-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	// Create assigns an id when unset and always stamps CreatedAt with the current time.
	Create(ctx context.Context, message *entity.Message) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	// FindAllByConversationId orders by CreatedAt ascending.
	FindAllByConversationId(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*entity.Message, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteByConversationId succeeds even when nothing matches.
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
}
