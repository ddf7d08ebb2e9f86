package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"` // nullable: ownerless conversations are allowed
	Title     string     `gorm:"type:text;not null"`
	Provider  string     `gorm:"type:varchar(50);not null"`
	Model     string     `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
