package database

import (
	"context"
	"fmt"
	"github.com/thereayou/everchat/internal/config"
	"github.com/thereayou/everchat/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log/slog"
)

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Connect открывает соединение и применяет миграции
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	d := NewDatabase(db)
	if err := d.Migrate(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) Migrate(ctx context.Context) error {
	slog.Info("running database migrations", "component", "database")

	err := d.db.WithContext(ctx).AutoMigrate(
		&models.Account{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.DirectMessage{},
		&models.AssistantExchange{},
		&models.EmergencyContact{},
		&models.SOSAlert{},
		&models.OfflineMap{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
