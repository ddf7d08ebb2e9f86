package model

import (
	"time"

	"github.com/google/uuid"
)

// ApiKey rows are never updated except for IsActive. The partial unique index keeps
// at most one active key per (user_id, provider).
type ApiKey struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_api_keys_active_pair,where:is_active = true"`
	Provider  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_api_keys_active_pair,where:is_active = true"`
	KeyValue  string    `gorm:"type:text;not null"`
	IsActive  bool      `gorm:"not null;index"`
	CreatedAt time.Time
}

func (ApiKey) TableName() string {
	return "api_keys"
}
