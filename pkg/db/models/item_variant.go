package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/pkg/types"
)

// ItemVariant is the sellable unit. Stock is the source of truth for
// availability; checkout decrements it with a guarded update.
type ItemVariant struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID            uuid.UUID        `gorm:"column:item_id;type:uuid;not null;index"`
	SKU               string           `gorm:"column:sku;not null;uniqueIndex"`
	Title             string           `gorm:"column:title;not null"`
	Attributes        types.JSONMap    `gorm:"column:attributes;type:jsonb;serializer:json"`
	PriceRub          decimal.Decimal  `gorm:"column:price_rub;type:numeric(12,2);not null"`
	CompareAtPriceRub *decimal.Decimal `gorm:"column:compare_at_price_rub;type:numeric(12,2)"`
	Stock             int              `gorm:"column:stock;not null;default:0"`
	IsActive          bool             `gorm:"column:is_active;not null;default:true;index"`
	Item              *Item            `gorm:"foreignKey:ItemID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
