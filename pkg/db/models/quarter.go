package models

import (
	"time"

	"github.com/google/uuid"
)

// Quarter is the fiscal period used as the pace baseline. At most one is
// active at a time; activation happens only through the rollover.
type Quarter struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	StartsOn  time.Time `gorm:"column:starts_on;not null"`
	EndsOn    time.Time `gorm:"column:ends_on;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
