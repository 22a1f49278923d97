package models

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedAssignment is an append-only copy of a promo assignment, tagged
// with the quarter it was archived under. Written only by the rollover.
type ArchivedAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuarterName  string    `gorm:"column:quarter_name;not null;index"`
	AccountID    uuid.UUID `gorm:"column:account_id;type:uuid;not null"`
	PromoID      uuid.UUID `gorm:"column:promo_id;type:uuid;not null"`
	TargetUnits  int       `gorm:"column:target_units;not null"`
	PaymentTerms string    `gorm:"column:payment_terms;not null;default:''"`
	AssignedAt   time.Time `gorm:"column:assigned_at;not null"`
	ArchivedAt   time.Time `gorm:"column:archived_at;autoCreateTime"`
}

// TableName keeps the historical collection name.
func (ArchivedAssignment) TableName() string { return "archived_account_promos" }
