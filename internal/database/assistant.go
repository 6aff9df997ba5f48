package database

import (
	"context"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/models"
)

func (d *Database) SaveExchange(ctx context.Context, exchange *models.AssistantExchange) error {
	return d.db.WithContext(ctx).Create(exchange).Error
}

func (d *Database) ListExchanges(ctx context.Context, accountID uuid.UUID, limit int) ([]models.AssistantExchange, error) {
	var exchanges []models.AssistantExchange
	err := d.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&exchanges).Error
	return exchanges, err
}
