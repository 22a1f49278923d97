package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/pkg/enums"
)

// NotificationLog records every attempted email send together with the
// structured event payload that produced it.
type NotificationLog struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.NotificationKind `gorm:"column:kind;type:notification_kind;not null"`
	Recipient string               `gorm:"column:recipient;not null"`
	Subject   string               `gorm:"column:subject;not null"`
	Status    enums.DeliveryStatus `gorm:"column:status;type:delivery_status;not null"`
	Error     *string              `gorm:"column:error"`
	Payload   json.RawMessage      `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical collection name.
func (NotificationLog) TableName() string { return "notification_log" }
