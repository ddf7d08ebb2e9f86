package entity

import (
	"time"

	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type ApiKey struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Provider  llm.Provider
	KeyValue  string
	IsActive  bool
	CreatedAt time.Time
}
