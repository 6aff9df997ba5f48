package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// DirectMessage не связан внешними ключами с аккаунтами: при удалении
// аккаунта переписка сохраняется.
type DirectMessage struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	SenderID     uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipientID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Content      string    `gorm:"type:text;not null"`
	IsRead       bool      `gorm:"default:false"`
	IsAIResponse bool      `gorm:"default:false"`
	CreatedAt    time.Time `gorm:"index"`
}

func (m *DirectMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
