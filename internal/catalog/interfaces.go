package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// CatalogRepository defines the persistence surface required by the catalog services.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository

	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)

	ListActiveTags(ctx context.Context) ([]models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	FindTagByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	UpdateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error)

	ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) (*ItemList, error)
	ListAdminItems(ctx context.Context, params pagination.Params, filters AdminItemFilters) (*ItemList, error)
	FindItemBySlug(ctx context.Context, slug string) (*models.Item, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	ReplaceItemCategories(ctx context.Context, itemID uuid.UUID, categoryIDs []uuid.UUID) error
	ReplaceItemTags(ctx context.Context, itemID uuid.UUID, tagIDs []uuid.UUID) error

	ListImages(ctx context.Context, itemID uuid.UUID) ([]models.ItemImage, error)
	FindImageByID(ctx context.Context, id uuid.UUID) (*models.ItemImage, error)
	CreateImage(ctx context.Context, image *models.ItemImage) (*models.ItemImage, error)
	UpdateImage(ctx context.Context, image *models.ItemImage) (*models.ItemImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	ClearMainImage(ctx context.Context, itemID uuid.UUID) error

	ListVariantsByItem(ctx context.Context, itemID uuid.UUID) ([]models.ItemVariant, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*models.ItemVariant, error)
	FindVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ItemVariant, error)
	CreateVariant(ctx context.Context, variant *models.ItemVariant) (*models.ItemVariant, error)
	UpdateVariant(ctx context.Context, variant *models.ItemVariant) (*models.ItemVariant, error)

	DecrementStockGuarded(ctx context.Context, variantID uuid.UUID, qty int) (bool, error)
	RecomputeItemStats(ctx context.Context, itemID uuid.UUID) error
}
