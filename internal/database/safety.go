package database

import (
	"context"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/models"
)

func (d *Database) SaveSOSAlert(ctx context.Context, alert *models.SOSAlert) error {
	return d.db.WithContext(ctx).Create(alert).Error
}

func (d *Database) SaveEmergencyContact(ctx context.Context, contact *models.EmergencyContact) error {
	return d.db.WithContext(ctx).Create(contact).Error
}

// ListEmergencyContacts основной контакт идёт первым
func (d *Database) ListEmergencyContacts(ctx context.Context, accountID uuid.UUID) ([]models.EmergencyContact, error) {
	var contacts []models.EmergencyContact
	err := d.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("is_primary DESC, created_at ASC").
		Find(&contacts).Error
	return contacts, err
}

func (d *Database) SaveOfflineMap(ctx context.Context, m *models.OfflineMap) error {
	return d.db.WithContext(ctx).Create(m).Error
}

func (d *Database) ListOfflineMaps(ctx context.Context, accountID uuid.UUID) ([]models.OfflineMap, error) {
	var maps []models.OfflineMap
	err := d.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("last_used_at DESC").
		Find(&maps).Error
	return maps, err
}
