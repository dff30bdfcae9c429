package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents the canonical catalog listing. MinPriceRub, MaxPriceRub and
// HasStock are denormalized from the item's active variants and must be
// recomputed whenever variant prices or stock change.
type Item struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string           `gorm:"column:slug;not null;uniqueIndex"`
	Title       string           `gorm:"column:title;not null"`
	Description string           `gorm:"column:description;not null"`
	Brand       *string          `gorm:"column:brand"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true;index"`
	SortRank    int              `gorm:"column:sort_rank;not null;default:0"`
	MinPriceRub *decimal.Decimal `gorm:"column:min_price_rub;type:numeric(12,2)"`
	MaxPriceRub *decimal.Decimal `gorm:"column:max_price_rub;type:numeric(12,2)"`
	HasStock    bool             `gorm:"column:has_stock;not null;default:false"`
	Categories  []Category       `gorm:"many2many:item_categories;joinForeignKey:ItemID;joinReferences:CategoryID"`
	Tags        []Tag            `gorm:"many2many:item_tags;joinForeignKey:ItemID;joinReferences:TagID"`
	Images      []ItemImage      `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Variants    []ItemVariant    `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ItemCategory is the items<->categories join row.
type ItemCategory struct {
	ItemID     uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
}

// TableName overrides the default naming.
func (ItemCategory) TableName() string {
	return "item_categories"
}

// ItemTag is the items<->tags join row.
type ItemTag struct {
	ItemID uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey"`
	TagID  uuid.UUID `gorm:"column:tag_id;type:uuid;primaryKey"`
}

// TableName overrides the default naming.
func (ItemTag) TableName() string {
	return "item_tags"
}
