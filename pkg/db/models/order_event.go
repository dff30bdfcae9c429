package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lavka-market/lavka-backend/pkg/enums"
)

// OrderEvent is the append-only status history. FromStatus is nil only for the
// initial placed event.
type OrderEvent struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID          `gorm:"column:order_id;type:uuid;not null;index"`
	FromStatus *enums.OrderStatus `gorm:"column:from_status;type:text"`
	ToStatus   enums.OrderStatus  `gorm:"column:to_status;type:text;not null"`
	Note       *string            `gorm:"column:note"`
	CreatedBy  string             `gorm:"column:created_by;not null"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
