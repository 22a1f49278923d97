package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Rep is a sales representative; the attribution source for transactions,
// notes and activity entries.
type Rep struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                  string         `gorm:"column:name;not null"`
	Email                 string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash          string         `gorm:"column:password_hash;not null"`
	IsAdmin               bool           `gorm:"column:is_admin;not null;default:false"`
	Territories           pq.StringArray `gorm:"column:territories;type:text[]"`
	NotifyTerritoryAlerts bool           `gorm:"column:notify_territory_alerts;not null;default:true"`
	NotifyWeeklySummary   bool           `gorm:"column:notify_weekly_summary;not null;default:true"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
