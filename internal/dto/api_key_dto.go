package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const keyMask = "••••••••"

type SetApiKeyRequest struct {
	Provider string `json:"provider" validate:"required,provider"`
	KeyValue string `json:"keyValue" validate:"required,max=1024"`
}

type ApiKeyResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"userId"`
	Provider  string    `json:"provider"`
	KeyValue  string    `json:"keyValue"` // always masked
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// MaskKey keeps the first 8 characters of a key. Keys of 8 characters or fewer keep
// only their first half so the mask never reveals a whole secret.
func MaskKey(key string) string {
	runes := []rune(strings.TrimSpace(key))
	visible := 8
	if len(runes) <= visible {
		visible = len(runes) / 2
	}
	return string(runes[:visible]) + keyMask
}
