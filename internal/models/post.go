package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Post struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `gorm:"type:char(36);index;not null"`
	Caption   string    `gorm:"type:text"`
	MediaRef  string    `gorm:"size:200"`
	CreatedAt time.Time `gorm:"index"`

	// Связи
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Like уникален для пары (аккаунт, пост)
type Like struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_like_account_post"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_like_account_post;index"`
	CreatedAt time.Time

	// Связи
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Post    Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `gorm:"type:char(36);not null"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	// Связи
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Post    Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
