package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Account is a customer location that can be enrolled in a promo. Accounts
// are never deleted by the rollover; only their promo state resets.
type Account struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	ShortCode   *int           `gorm:"column:short_code"`
	Territories pq.StringArray `gorm:"column:territories;type:text[]"`
	Notes       *string        `gorm:"column:notes"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
