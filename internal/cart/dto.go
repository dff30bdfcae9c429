package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/pkg/enums"
)

// MergeLine is one incoming cart entry.
type MergeLine struct {
	VariantID uuid.UUID
	Qty       int
}

// MergeWarning reports a line the merge could not honor as requested.
type MergeWarning struct {
	VariantID uuid.UUID               `json:"variantId"`
	Reason    enums.CartWarningReason `json:"reason"`
}

// Line is one resolved cart line in the view.
type Line struct {
	VariantID    uuid.UUID       `json:"variantId"`
	ItemID       uuid.UUID       `json:"itemId"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variantTitle"`
	SKU          string          `json:"sku"`
	Qty          int             `json:"qty"`
	UnitPriceRub decimal.Decimal `json:"unitPriceRub"`
	LineTotalRub decimal.Decimal `json:"lineTotalRub"`
	Available    bool            `json:"available"`
	Stock        int             `json:"stock"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
}

// Totals aggregates the cart view.
type Totals struct {
	ItemsCount  int             `json:"itemsCount"`
	SubtotalRub decimal.Decimal `json:"subtotalRub"`
}

// View is the resolved cart returned by every cart operation.
type View struct {
	ID        uuid.UUID `json:"id"`
	Items     []Line    `json:"items"`
	Totals    Totals    `json:"totals"`
	UpdatedAt time.Time `json:"updatedAt"`
}
