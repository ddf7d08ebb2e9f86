package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title    string `json:"title" validate:"max=255"`
	Provider string `json:"provider" validate:"required,provider"`
	Model    string `json:"model" validate:"max=255"`
}

// UpdateConversationRequest is a partial update; absent fields are kept.
type UpdateConversationRequest struct {
	Id       uuid.UUID `json:"-"`
	Title    *string   `json:"title" validate:"omitempty,max=255"`
	Provider *string   `json:"provider" validate:"omitempty,provider"`
	Model    *string   `json:"model" validate:"omitempty,max=255"`
}

type ConversationResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	UserId    *uuid.UUID `json:"userId"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
