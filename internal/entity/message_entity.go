package entity

import (
	"time"

	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = llm.RoleUser
	MessageRoleAssistant MessageRole = llm.RoleAssistant
)

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           MessageRole
	Content        string
	Metadata       MessageMetadata
	CreatedAt      time.Time
}

// MessageMetadata is the open-ended structured data attached to a turn.
type MessageMetadata struct {
	Images      []string     `json:"images,omitempty"` // data URLs
	Attachments []Attachment `json:"attachments,omitempty"`
	Usage       *llm.Usage   `json:"usage,omitempty"`
}

type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
	Content  string `json:"content,omitempty"`
}
