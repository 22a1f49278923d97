package models

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedTransaction is an append-only copy of a transaction, tagged with
// the quarter it was archived under. Written only by the rollover.
type ArchivedTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuarterName string    `gorm:"column:quarter_name;not null;index"`
	AccountID   uuid.UUID `gorm:"column:account_id;type:uuid;not null"`
	PromoID     uuid.UUID `gorm:"column:promo_id;type:uuid;not null"`
	RepID       uuid.UUID `gorm:"column:rep_id;type:uuid;not null"`
	UnitsSold   int       `gorm:"column:units_sold;not null"`
	SoldOn      time.Time `gorm:"column:sold_on;not null"`
	Note        *string   `gorm:"column:note"`
	ArchivedAt  time.Time `gorm:"column:archived_at;autoCreateTime"`
}
