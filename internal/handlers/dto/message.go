package dto

import (
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" form:"recipient_id"`
	Content     string `json:"content" form:"content"`
}

// ThreadMessage элемент ответа /api/messages/:userId
type ThreadMessage struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	SenderID  uuid.UUID `json:"sender_id"`
	CreatedAt string    `json:"created_at"`
	IsOwn     bool      `json:"is_own"`
}

type MessageResponse struct {
	ID           uuid.UUID `json:"id"`
	SenderID     uuid.UUID `json:"sender_id"`
	RecipientID  uuid.UUID `json:"recipient_id"`
	Content      string    `json:"content"`
	IsRead       bool      `json:"is_read"`
	IsAIResponse bool      `json:"is_ai_response"`
	CreatedAt    string    `json:"created_at"`
}

type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}
