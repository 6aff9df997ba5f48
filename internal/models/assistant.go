package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type AssistantExchange struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Mode        string    `gorm:"size:50;default:'general'"`
	UserMessage string    `gorm:"type:text;not null"`
	AIResponse  string    `gorm:"type:text;not null"`
	CreatedAt   time.Time
}

func (e *AssistantExchange) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
