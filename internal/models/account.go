package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:256;not null"`
	Bio          string    `gorm:"type:text"`
	AvatarRef    string    `gorm:"size:200"`
	LastSeenAt   time.Time
	CreatedAt    time.Time
}

func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
