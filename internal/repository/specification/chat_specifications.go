package specification

import (
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByProvider struct {
	Provider llm.Provider
}

func (s ByProvider) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ?", string(s.Provider))
}

// ActiveKeys keeps only the key currently in effect.
type ActiveKeys struct{}

func (s ActiveKeys) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
