package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promo is a time-boxed sales incentive. Assignments reference promos but
// never own them.
type Promo struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Code         string          `gorm:"column:code;not null;uniqueIndex"`
	DiscountRate decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,2);not null"`
	DefaultTerms string          `gorm:"column:default_terms;not null;default:''"`
	StartsOn     time.Time       `gorm:"column:starts_on;not null"`
	EndsOn       time.Time       `gorm:"column:ends_on;not null"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
