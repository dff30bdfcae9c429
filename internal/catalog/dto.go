package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
	"github.com/lavka-market/lavka-backend/pkg/types"
)

// ItemFilters describe the inputs supported by the public item listing.
type ItemFilters struct {
	Query        string
	CategorySlug string
	TagSlugs     []string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	InStock      bool
	Sort         enums.ItemSort
}

// ItemList wraps one page of catalog items.
type ItemList struct {
	Items []models.Item   `json:"items"`
	Page  pagination.Page `json:"pagination"`
}

// AdminItemFilters describe the admin item listing inputs.
type AdminItemFilters struct {
	Query    string
	IsActive *bool
}

// CategoryInput carries category create/update fields.
type CategoryInput struct {
	Slug     string
	Title    string
	ParentID *uuid.UUID
	SortRank int
	IsActive *bool
}

// TagInput carries tag create/update fields.
type TagInput struct {
	Slug     string
	Title    string
	IsActive *bool
}

// ItemInput carries item create/update fields.
type ItemInput struct {
	Slug        string
	Title       string
	Description string
	Brand       *string
	SortRank    int
	IsActive    *bool
	CategoryIDs []uuid.UUID
	TagIDs      []uuid.UUID
}

// ImageInput carries item image create/update fields.
type ImageInput struct {
	URL       string
	Alt       *string
	SortOrder int
	IsMain    bool
}

// VariantInput carries variant create/update fields.
type VariantInput struct {
	SKU               string
	Title             string
	Attributes        types.JSONMap
	PriceRub          decimal.Decimal
	CompareAtPriceRub *decimal.Decimal
	Stock             int
	IsActive          *bool
}
