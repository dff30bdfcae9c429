package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// Repository exposes persistence operations for catalog data.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CatalogRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListActiveCategories returns active categories in sort_rank order.
func (r *Repository) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_rank ASC, title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListCategories returns every category, active or not.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("sort_rank ASC, title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCategoryByID loads a category by primary key.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory saves the provided category.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// ListActiveTags returns active tags in title order.
func (r *Repository) ListActiveTags(ctx context.Context) ([]models.Tag, error) {
	var rows []models.Tag
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTags returns every tag, active or not.
func (r *Repository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var rows []models.Tag
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTagByID loads a tag by primary key.
func (r *Repository) FindTagByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var row models.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateTag inserts a new tag.
func (r *Repository) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag saves the provided tag.
func (r *Repository) UpdateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// ListItems returns one page of active items matching the public filters.
func (r *Repository) ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) (*ItemList, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Item{}).Where("items.is_active = ?", true)
	query = applyItemFilters(query, filters)

	var total int64
	if err := query.Distinct("items.id").Count(&total).Error; err != nil {
		return nil, err
	}

	query = applyItemSort(query, filters.Sort)

	var rows []models.Item
	err := query.
		Distinct().
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ItemList{Items: rows, Page: pagination.NewPage(params, total)}, nil
}

func applyItemFilters(query *gorm.DB, filters ItemFilters) *gorm.DB {
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("items.title LIKE ? OR items.description LIKE ?", like, like)
	}
	if filters.CategorySlug != "" {
		query = query.
			Joins("JOIN item_categories ic ON ic.item_id = items.id").
			Joins("JOIN categories c ON c.id = ic.category_id").
			Where("c.slug = ? AND c.is_active = ?", filters.CategorySlug, true)
	}
	if len(filters.TagSlugs) > 0 {
		query = query.
			Joins("JOIN item_tags it ON it.item_id = items.id").
			Joins("JOIN tags t ON t.id = it.tag_id").
			Where("t.slug IN ? AND t.is_active = ?", filters.TagSlugs, true)
	}
	if filters.PriceMin != nil {
		query = query.Where("items.min_price_rub >= ?", filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("items.min_price_rub <= ?", filters.PriceMax)
	}
	if filters.InStock {
		query = query.Where("items.has_stock = ?", true)
	}
	return query
}

func applyItemSort(query *gorm.DB, sort enums.ItemSort) *gorm.DB {
	switch sort {
	case enums.ItemSortPriceAsc:
		return query.Order("items.min_price_rub IS NULL, items.min_price_rub ASC")
	case enums.ItemSortPriceDesc:
		return query.Order("items.min_price_rub IS NULL, items.min_price_rub DESC")
	case enums.ItemSortTitleAsc:
		return query.Order("items.title ASC")
	case enums.ItemSortNewest:
		return query.Order("items.created_at DESC")
	default:
		return query.Order("items.sort_rank ASC, items.title ASC")
	}
}

// ListAdminItems returns one page of items for the admin listing.
func (r *Repository) ListAdminItems(ctx context.Context, params pagination.Params, filters AdminItemFilters) (*ItemList, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Item{})
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("title LIKE ? OR slug LIKE ?", like, like)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Item
	err := query.
		Order("created_at DESC").
		Preload("Variants").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ItemList{Items: rows, Page: pagination.NewPage(params, total)}, nil
}

// FindItemBySlug loads an item with its relations for the public detail view.
func (r *Repository) FindItemBySlug(ctx context.Context, slug string) (*models.Item, error) {
	var row models.Item
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Variants", "is_active = ?", true).
		Preload("Categories", "is_active = ?", true).
		Preload("Tags", "is_active = ?", true).
		Where("slug = ?", slug).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindItemByID loads an item with all of its relations.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var row models.Item
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Variants").
		Preload("Categories").
		Preload("Tags").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateItem inserts a new item.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Tags", "Images", "Variants").Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem saves the provided item's scalar columns.
func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Tags", "Images", "Variants").Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ReplaceItemCategories rewrites the category assignment for an item.
func (r *Repository) ReplaceItemCategories(ctx context.Context, itemID uuid.UUID, categoryIDs []uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]models.ItemCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		rows = append(rows, models.ItemCategory{ItemID: itemID, CategoryID: id})
	}
	return tx.Create(&rows).Error
}

// ReplaceItemTags rewrites the tag assignment for an item.
func (r *Repository) ReplaceItemTags(ctx context.Context, itemID uuid.UUID, tagIDs []uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.ItemTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, models.ItemTag{ItemID: itemID, TagID: id})
	}
	return tx.Create(&rows).Error
}

// ListImages returns an item's gallery in sort order.
func (r *Repository) ListImages(ctx context.Context, itemID uuid.UUID) ([]models.ItemImage, error) {
	var rows []models.ItemImage
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindImageByID loads an image by primary key.
func (r *Repository) FindImageByID(ctx context.Context, id uuid.UUID) (*models.ItemImage, error) {
	var row models.ItemImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateImage inserts a new item image.
func (r *Repository) CreateImage(ctx context.Context, image *models.ItemImage) (*models.ItemImage, error) {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// UpdateImage saves the provided image.
func (r *Repository) UpdateImage(ctx context.Context, image *models.ItemImage) (*models.ItemImage, error) {
	if err := r.db.WithContext(ctx).Save(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage removes an image row.
func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ItemImage{}).Error
}

// ClearMainImage unsets is_main on every image of the item.
func (r *Repository) ClearMainImage(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ItemImage{}).
		Where("item_id = ?", itemID).
		Update("is_main", false).Error
}

// ListVariantsByItem returns all variants of an item.
func (r *Repository) ListVariantsByItem(ctx context.Context, itemID uuid.UUID) ([]models.ItemVariant, error) {
	var rows []models.ItemVariant
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindVariantByID loads a variant by primary key.
func (r *Repository) FindVariantByID(ctx context.Context, id uuid.UUID) (*models.ItemVariant, error) {
	var row models.ItemVariant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindVariantsByIDs loads the variants for the provided ids.
func (r *Repository) FindVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ItemVariant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ItemVariant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateVariant inserts a new variant.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.ItemVariant) (*models.ItemVariant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant saves the provided variant.
func (r *Repository) UpdateVariant(ctx context.Context, variant *models.ItemVariant) (*models.ItemVariant, error) {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// DecrementStockGuarded atomically decrements stock when enough remains. The
// guard in the WHERE clause is what makes concurrent checkouts safe.
func (r *Repository) DecrementStockGuarded(ctx context.Context, variantID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE item_variants SET stock = stock - ? WHERE id = ? AND stock >= ?",
		qty, variantID, qty,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RecomputeItemStats refreshes the denormalized price range and stock flag
// from the item's active variants.
func (r *Repository) RecomputeItemStats(ctx context.Context, itemID uuid.UUID) error {
	var variants []models.ItemVariant
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_active = ?", itemID, true).
		Find(&variants).Error
	if err != nil {
		return err
	}

	var minPrice, maxPrice *decimal.Decimal
	hasStock := false
	for i := range variants {
		price := variants[i].PriceRub
		if minPrice == nil || price.LessThan(*minPrice) {
			p := price
			minPrice = &p
		}
		if maxPrice == nil || price.GreaterThan(*maxPrice) {
			p := price
			maxPrice = &p
		}
		if variants[i].Stock > 0 {
			hasStock = true
		}
	}

	updates := map[string]any{
		"min_price_rub": nil,
		"max_price_rub": nil,
		"has_stock":     hasStock,
	}
	if minPrice != nil {
		updates["min_price_rub"] = *minPrice
	}
	if maxPrice != nil {
		updates["max_price_rub"] = *maxPrice
	}

	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}
