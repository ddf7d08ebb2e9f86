package dto

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeCompletedEvent is published after an assistant reply is stored.
type ExchangeCompletedEvent struct {
	UserId             uuid.UUID `json:"userId"`
	ConversationId     uuid.UUID `json:"conversationId"`
	AssistantMessageId uuid.UUID `json:"assistantMessageId"`
	Provider           string    `json:"provider"`
	Model              string    `json:"model"`
	Usage              *UsageDTO `json:"usage,omitempty"`
	LatencyMs          int64     `json:"latencyMs"`
	OccurredAt         time.Time `json:"occurredAt"`
}
