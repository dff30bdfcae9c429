package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a user saved an item. The pair is the primary key, so a
// repeated like is a no-op.
type Like struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
