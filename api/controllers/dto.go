package controllers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type categoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Slug     string     `json:"slug"`
	Title    string     `json:"title"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
	SortRank int        `json:"sortRank"`
	IsActive bool       `json:"isActive"`
}

func newCategoryResponse(record models.Category) categoryResponse {
	return categoryResponse{
		ID:       record.ID,
		Slug:     record.Slug,
		Title:    record.Title,
		ParentID: record.ParentID,
		SortRank: record.SortRank,
		IsActive: record.IsActive,
	}
}

func newCategoryResponses(records []models.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(records))
	for _, record := range records {
		out = append(out, newCategoryResponse(record))
	}
	return out
}

type tagResponse struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	IsActive bool      `json:"isActive"`
}

func newTagResponse(record models.Tag) tagResponse {
	return tagResponse{ID: record.ID, Slug: record.Slug, Title: record.Title, IsActive: record.IsActive}
}

func newTagResponses(records []models.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(records))
	for _, record := range records {
		out = append(out, newTagResponse(record))
	}
	return out
}

type imageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Alt       *string   `json:"alt,omitempty"`
	SortOrder int       `json:"sortOrder"`
	IsMain    bool      `json:"isMain"`
}

func newImageResponse(record models.ItemImage) imageResponse {
	return imageResponse{
		ID:        record.ID,
		URL:       record.URL,
		Alt:       record.Alt,
		SortOrder: record.SortOrder,
		IsMain:    record.IsMain,
	}
}

type variantResponse struct {
	ID                uuid.UUID        `json:"id"`
	SKU               string           `json:"sku"`
	Title             string           `json:"title"`
	Attributes        map[string]any   `json:"attributes,omitempty"`
	PriceRub          decimal.Decimal  `json:"priceRub"`
	CompareAtPriceRub *decimal.Decimal `json:"compareAtPriceRub,omitempty"`
	Stock             int              `json:"stock"`
	InStock           bool             `json:"inStock"`
	IsActive          bool             `json:"isActive"`
}

func newVariantResponse(record models.ItemVariant) variantResponse {
	return variantResponse{
		ID:                record.ID,
		SKU:               record.SKU,
		Title:             record.Title,
		Attributes:        record.Attributes,
		PriceRub:          record.PriceRub,
		CompareAtPriceRub: record.CompareAtPriceRub,
		Stock:             record.Stock,
		InStock:           record.IsActive && record.Stock > 0,
		IsActive:          record.IsActive,
	}
}

type itemSummaryResponse struct {
	ID          uuid.UUID          `json:"id"`
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Brand       *string            `json:"brand,omitempty"`
	MinPriceRub *decimal.Decimal   `json:"minPriceRub,omitempty"`
	MaxPriceRub *decimal.Decimal   `json:"maxPriceRub,omitempty"`
	HasStock    bool               `json:"hasStock"`
	IsActive    bool               `json:"isActive"`
	Images      []imageResponse    `json:"images"`
	Categories  []categoryResponse `json:"categories"`
	Tags        []tagResponse      `json:"tags"`
}

func newItemSummaryResponse(record models.Item) itemSummaryResponse {
	images := make([]imageResponse, 0, len(record.Images))
	for _, image := range record.Images {
		images = append(images, newImageResponse(image))
	}
	return itemSummaryResponse{
		ID:          record.ID,
		Slug:        record.Slug,
		Title:       record.Title,
		Brand:       record.Brand,
		MinPriceRub: record.MinPriceRub,
		MaxPriceRub: record.MaxPriceRub,
		HasStock:    record.HasStock,
		IsActive:    record.IsActive,
		Images:      images,
		Categories:  newCategoryResponses(record.Categories),
		Tags:        newTagResponses(record.Tags),
	}
}

func newItemSummaryResponses(records []models.Item) []itemSummaryResponse {
	out := make([]itemSummaryResponse, 0, len(records))
	for _, record := range records {
		out = append(out, newItemSummaryResponse(record))
	}
	return out
}

type itemDetailResponse struct {
	itemSummaryResponse
	Description string            `json:"description"`
	Variants    []variantResponse `json:"variants"`
}

func newItemDetailResponse(record *models.Item) itemDetailResponse {
	variants := make([]variantResponse, 0, len(record.Variants))
	for _, variant := range record.Variants {
		variants = append(variants, newVariantResponse(variant))
	}
	return itemDetailResponse{
		itemSummaryResponse: newItemSummaryResponse(*record),
		Description:         record.Description,
		Variants:            variants,
	}
}

type itemListResponse struct {
	Items []itemSummaryResponse `json:"items"`
	Page  pagination.Page       `json:"pagination"`
}

type userResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       *string    `json:"phone,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newUserResponse(record *models.User) userResponse {
	return userResponse{
		ID:          record.ID,
		Email:       record.Email,
		Name:        record.Name,
		Phone:       record.Phone,
		IsActive:    record.IsActive,
		LastLoginAt: record.LastLoginAt,
		CreatedAt:   record.CreatedAt,
	}
}

type orderItemResponse struct {
	ItemID       uuid.UUID       `json:"itemId"`
	VariantID    uuid.UUID       `json:"variantId"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variantTitle"`
	SKU          string          `json:"sku"`
	UnitPriceRub decimal.Decimal `json:"unitPriceRub"`
	Qty          int             `json:"qty"`
	LineTotalRub decimal.Decimal `json:"lineTotalRub"`
}

type orderEventResponse struct {
	ID         uuid.UUID          `json:"id"`
	FromStatus *enums.OrderStatus `json:"fromStatus,omitempty"`
	ToStatus   enums.OrderStatus  `json:"toStatus"`
	Note       *string            `json:"note,omitempty"`
	CreatedBy  string             `json:"createdBy"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type orderResponse struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"userId"`
	Status          enums.OrderStatus    `json:"status"`
	Currency        string               `json:"currency"`
	SubtotalRub     decimal.Decimal      `json:"subtotalRub"`
	DeliveryRub     decimal.Decimal      `json:"deliveryRub"`
	TotalRub        decimal.Decimal      `json:"totalRub"`
	ContactName     string               `json:"contactName"`
	ContactPhone    string               `json:"contactPhone"`
	Email           string               `json:"email"`
	DeliveryMethod  enums.DeliveryMethod `json:"deliveryMethod"`
	DeliveryAddress map[string]any       `json:"deliveryAddress,omitempty"`
	Comment         *string              `json:"comment,omitempty"`
	PlacedAt        time.Time            `json:"placedAt"`
	PaidAt          *time.Time           `json:"paidAt,omitempty"`
	CanceledAt      *time.Time           `json:"canceledAt,omitempty"`
	Items           []orderItemResponse  `json:"items"`
	Events          []orderEventResponse `json:"events"`
}

func newOrderResponse(record *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, orderItemResponse{
			ItemID:       item.ItemID,
			VariantID:    item.VariantID,
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			SKU:          item.SKU,
			UnitPriceRub: item.UnitPriceRub,
			Qty:          item.Qty,
			LineTotalRub: item.LineTotalRub,
		})
	}
	events := make([]orderEventResponse, 0, len(record.Events))
	for _, event := range record.Events {
		events = append(events, orderEventResponse{
			ID:         event.ID,
			FromStatus: event.FromStatus,
			ToStatus:   event.ToStatus,
			Note:       event.Note,
			CreatedBy:  event.CreatedBy,
			CreatedAt:  event.CreatedAt,
		})
	}
	return orderResponse{
		ID:              record.ID,
		UserID:          record.UserID,
		Status:          record.Status,
		Currency:        record.Currency,
		SubtotalRub:     record.SubtotalRub,
		DeliveryRub:     record.DeliveryRub,
		TotalRub:        record.TotalRub,
		ContactName:     record.ContactName,
		ContactPhone:    record.ContactPhone,
		Email:           record.Email,
		DeliveryMethod:  record.DeliveryMethod,
		DeliveryAddress: record.DeliveryAddress,
		Comment:         record.Comment,
		PlacedAt:        record.PlacedAt,
		PaidAt:          record.PaidAt,
		CanceledAt:      record.CanceledAt,
		Items:           items,
		Events:          events,
	}
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Page   pagination.Page `json:"pagination"`
}

func newOrderListResponse(records []models.Order, page pagination.Page) orderListResponse {
	orders := make([]orderResponse, 0, len(records))
	for i := range records {
		orders = append(orders, newOrderResponse(&records[i]))
	}
	return orderListResponse{Orders: orders, Page: page}
}
