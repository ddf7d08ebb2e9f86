package entity

import (
	"time"

	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	UserId    *uuid.UUID // nil for ownerless conversations
	Title     string
	Provider  llm.Provider
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userId owns the conversation. Ownerless conversations
// are owned by nobody.
func (c *Conversation) OwnedBy(userId uuid.UUID) bool {
	return c.UserId != nil && *c.UserId == userId
}

// ConversationPatch carries the fields of a partial update. Nil fields are left untouched.
type ConversationPatch struct {
	Title    *string
	Provider *llm.Provider
	Model    *string
}
