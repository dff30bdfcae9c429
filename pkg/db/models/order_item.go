package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots one cart line at checkout time. Title, variant title,
// SKU and unit price are copied so later catalog edits do not rewrite history.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ItemID       uuid.UUID       `gorm:"column:item_id;type:uuid;not null"`
	VariantID    uuid.UUID       `gorm:"column:variant_id;type:uuid;not null"`
	Title        string          `gorm:"column:title;not null"`
	VariantTitle string          `gorm:"column:variant_title;not null"`
	SKU          string          `gorm:"column:sku;not null"`
	UnitPriceRub decimal.Decimal `gorm:"column:unit_price_rub;type:numeric(12,2);not null"`
	Qty          int             `gorm:"column:qty;not null"`
	LineTotalRub decimal.Decimal `gorm:"column:line_total_rub;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
