package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/pkg/enums"
)

// ActivityLog is the append-only, best-effort audit trail of rep actions.
type ActivityLog struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Action    enums.ActivityAction `gorm:"column:action;type:activity_action;not null"`
	AccountID *uuid.UUID           `gorm:"column:account_id;type:uuid"`
	RepID     uuid.UUID            `gorm:"column:rep_id;type:uuid;not null"`
	Detail    string               `gorm:"column:detail;not null;default:''"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical collection name.
func (ActivityLog) TableName() string { return "activity_log" }
