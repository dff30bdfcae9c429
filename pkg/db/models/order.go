package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/types"
)

// Order is the checkout result. Amounts and line snapshots are immutable once
// the order is placed.
type Order struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus    `gorm:"column:status;type:text;not null"`
	Currency        string               `gorm:"column:currency;not null;default:'RUB'"`
	SubtotalRub     decimal.Decimal      `gorm:"column:subtotal_rub;type:numeric(12,2);not null"`
	DeliveryRub     decimal.Decimal      `gorm:"column:delivery_rub;type:numeric(12,2);not null;default:0"`
	TotalRub        decimal.Decimal      `gorm:"column:total_rub;type:numeric(12,2);not null"`
	ContactName     string               `gorm:"column:contact_name;not null"`
	ContactPhone    string               `gorm:"column:contact_phone;not null"`
	Email           string               `gorm:"column:email;not null"`
	DeliveryMethod  enums.DeliveryMethod `gorm:"column:delivery_method;type:text;not null"`
	DeliveryAddress types.JSONMap        `gorm:"column:delivery_address;type:jsonb;serializer:json"`
	Comment         *string              `gorm:"column:comment"`
	PlacedAt        time.Time            `gorm:"column:placed_at;not null"`
	PaidAt          *time.Time           `gorm:"column:paid_at"`
	CanceledAt      *time.Time           `gorm:"column:canceled_at"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Events          []OrderEvent         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
