package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountNote is an append-only note authored by a rep against an account.
type AccountNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;not null;index"`
	RepID     uuid.UUID `gorm:"column:rep_id;type:uuid;not null"`
	Body      string    `gorm:"column:body;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
