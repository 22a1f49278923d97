package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an immutable record of units sold by a rep against an
// account's current promo. There is no update path.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;not null;index"`
	PromoID   uuid.UUID `gorm:"column:promo_id;type:uuid;not null"`
	RepID     uuid.UUID `gorm:"column:rep_id;type:uuid;not null"`
	UnitsSold int       `gorm:"column:units_sold;not null"`
	SoldOn    time.Time `gorm:"column:sold_on;not null"`
	Note      *string   `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
