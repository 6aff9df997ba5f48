package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

const (
	SOSStatusActive     = "active"
	SOSStatusResolved   = "resolved"
	SOSStatusFalseAlarm = "false_alarm"
)

type EmergencyContact struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Name         string    `gorm:"size:100;not null"`
	Phone        string    `gorm:"size:20;not null"`
	Relationship string    `gorm:"size:50"`
	IsPrimary    bool      `gorm:"default:false"`
	CreatedAt    time.Time
}

func (c *EmergencyContact) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type SOSAlert struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Latitude   float64
	Longitude  float64
	Message    string `gorm:"type:text"`
	Status     string `gorm:"size:20;default:'active';check:status IN ('active','resolved','false_alarm')"`
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

func (a *SOSAlert) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = SOSStatusActive
	}
	return nil
}

// OfflineMap хранит только метаданные скачанного региона
type OfflineMap struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	AccountID    uuid.UUID `gorm:"type:char(36);not null;index"`
	RegionName   string    `gorm:"size:200;not null"`
	CenterLat    float64   `gorm:"not null"`
	CenterLng    float64   `gorm:"not null"`
	ZoomLevel    int       `gorm:"default:10"`
	FileSize     int64
	DownloadedAt time.Time
	LastUsedAt   time.Time
}

func (m *OfflineMap) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	if m.DownloadedAt.IsZero() {
		m.DownloadedAt = now
	}
	if m.LastUsedAt.IsZero() {
		m.LastUsedAt = now
	}
	return nil
}
