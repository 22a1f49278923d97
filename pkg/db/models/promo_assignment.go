package models

import (
	"time"

	"github.com/google/uuid"
)

// PromoAssignment binds one account to one promo with a unit target. The
// assignment with the most recent assigned_at is the authoritative one for
// an account.
type PromoAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID    uuid.UUID `gorm:"column:account_id;type:uuid;not null;index"`
	PromoID      uuid.UUID `gorm:"column:promo_id;type:uuid;not null"`
	TargetUnits  int       `gorm:"column:target_units;not null"`
	PaymentTerms string    `gorm:"column:payment_terms;not null;default:''"`
	AssignedAt   time.Time `gorm:"column:assigned_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical collection name.
func (PromoAssignment) TableName() string { return "account_promos" }
