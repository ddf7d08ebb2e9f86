package contract

import (
	"context"

	"llm-chat-be/internal/entity"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type ApiKeyRepository interface {
	FindActive(ctx context.Context, userId uuid.UUID, provider llm.Provider) (*entity.ApiKey, error)
	FindAllActiveByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.ApiKey, error)
	// FindHistory returns every key of the pair, active or not, oldest first.
	FindHistory(ctx context.Context, userId uuid.UUID, provider llm.Provider) ([]*entity.ApiKey, error)
	// ReplaceActive deactivates every key of (key.UserId, key.Provider) and inserts key
	// as the new active one. Both steps happen atomically.
	ReplaceActive(ctx context.Context, key *entity.ApiKey) error
	DeleteActive(ctx context.Context, userId uuid.UUID, provider llm.Provider) (bool, error)
}
