package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/models"
	"gorm.io/gorm"
	"strings"
	"time"
)

// CreateAccount проверяет уникальность имени и почты перед вставкой
func (d *Database) CreateAccount(ctx context.Context, account *models.Account) error {
	db := d.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Account{}).Where("username = ?", account.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateUsername
	}
	if err := db.Model(&models.Account{}).Where("email = ?", account.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if err := db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (d *Database) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := d.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (d *Database) FindAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (d *Database) UpdateAccount(ctx context.Context, account *models.Account) error {
	return d.db.WithContext(ctx).Save(account).Error
}

func (d *Database) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	res := d.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("last_seen_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContacts возвращает всех пользователей, кроме текущего
func (d *Database) ListContacts(ctx context.Context, viewerID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	err := d.db.WithContext(ctx).
		Where("id <> ?", viewerID).
		Order("username ASC").
		Find(&accounts).Error
	return accounts, err
}

// DeleteAccount удаляет аккаунт вместе с постами, лайками и комментариями.
// Личные сообщения и журнал ассистента остаются.
func (d *Database) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Select("id").First(&account, "id = ?", id).Error; err != nil {
			return err
		}

		ownPosts := tx.Model(&models.Post{}).Select("id").Where("account_id = ?", id)

		if err := tx.Where("account_id = ? OR post_id IN (?)", id, ownPosts).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ? OR post_id IN (?)", id, ownPosts).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
