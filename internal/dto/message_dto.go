package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentDTO struct {
	Name     string `json:"name" validate:"required,max=255"`
	MimeType string `json:"mimeType,omitempty"`
	Content  string `json:"content,omitempty"`
}

type SendMessageRequest struct {
	Content     string          `json:"content" validate:"required"`
	Images      []string        `json:"images,omitempty" validate:"max=10"` // data URLs or bare base64
	Attachments []AttachmentDTO `json:"attachments,omitempty" validate:"max=10,dive"`
}

type UpdateMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type UsageDTO struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type MessageMetadataDTO struct {
	Images      []string        `json:"images,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
	Usage       *UsageDTO       `json:"usage,omitempty"`
}

type MessageResponse struct {
	Id             uuid.UUID          `json:"id"`
	ConversationId uuid.UUID          `json:"conversationId"`
	Role           string             `json:"role"`
	Content        string             `json:"content"`
	Metadata       MessageMetadataDTO `json:"metadata"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type SendMessageResponse struct {
	UserMessage      *MessageResponse `json:"userMessage"`
	AssistantMessage *MessageResponse `json:"assistantMessage"`
}

// SendFailureData is attached to send errors raised after the user turn was stored.
type SendFailureData struct {
	UserMessage *MessageResponse `json:"userMessage"`
}
