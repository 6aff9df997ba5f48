package database

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/models"
	"gorm.io/gorm"
)

const recentActivityLimit = 20

func (d *Database) SaveMessage(ctx context.Context, message *models.DirectMessage) error {
	return d.db.WithContext(ctx).Create(message).Error
}

// SendMessage молча игнорирует пустого получателя или пустой текст: возвращает nil, nil
func (d *Database) SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, content string, aiResponse bool) (*models.DirectMessage, error) {
	if recipientID == uuid.Nil || content == "" {
		return nil, nil
	}

	db := d.db.WithContext(ctx)

	var recipient models.Account
	if err := db.Select("id").First(&recipient, "id = ?", recipientID).Error; err != nil {
		return nil, notFound(err)
	}

	message := &models.DirectMessage{
		SenderID:     senderID,
		RecipientID:  recipientID,
		Content:      content,
		IsAIResponse: aiResponse,
	}
	if err := db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return message, nil
}

// ListThread возвращает переписку двух пользователей, старые первыми,
// и в той же транзакции помечает прочитанными входящие от собеседника.
// Возвращённые сообщения отражают состояние до отметки.
func (d *Database) ListThread(ctx context.Context, viewerID, otherID uuid.UUID) ([]models.DirectMessage, error) {
	var messages []models.DirectMessage

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				viewerID, otherID, otherID, viewerID).
			Order("created_at ASC").
			Find(&messages).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.DirectMessage{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherID, viewerID, false).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	return messages, nil
}

// ListRecentActivity возвращает последние входящие и исходящие сообщения
func (d *Database) ListRecentActivity(ctx context.Context, viewerID uuid.UUID) ([]models.DirectMessage, error) {
	var messages []models.DirectMessage
	err := d.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", viewerID, viewerID).
		Order("created_at DESC").
		Limit(recentActivityLimit).
		Find(&messages).Error
	return messages, err
}

func (d *Database) UnreadCount(ctx context.Context, viewerID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.DirectMessage{}).
		Where("recipient_id = ? AND is_read = ?", viewerID, false).
		Count(&count).Error
	return count, err
}
