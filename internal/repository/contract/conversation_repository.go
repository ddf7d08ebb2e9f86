package contract

import (
	"context"

	"llm-chat-be/internal/entity"

	"github.com/google/uuid"
)

// ConversationRepository finders return (nil, nil) when nothing matches.
type ConversationRepository interface {
	// Create assigns an id when unset and sets CreatedAt = UpdatedAt = now.
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	// FindAllByUserId orders by UpdatedAt descending.
	FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error)
	// Update merges patch and always refreshes UpdatedAt.
	Update(ctx context.Context, id uuid.UUID, patch entity.ConversationPatch) (*entity.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) (bool, error)
	// Delete removes the conversation's messages first, then the conversation.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
