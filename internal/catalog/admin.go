package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db"
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AdminService exposes catalog management for the admin API.
type AdminService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeactivateCategory(ctx context.Context, id uuid.UUID) error

	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, input TagInput) (*models.Tag, error)
	UpdateTag(ctx context.Context, id uuid.UUID, input TagInput) (*models.Tag, error)
	DeactivateTag(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, params pagination.Params, filters AdminItemFilters) (*ItemList, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.Item, error)
	DeactivateItem(ctx context.Context, id uuid.UUID) error

	AddImage(ctx context.Context, itemID uuid.UUID, input ImageInput) (*models.ItemImage, error)
	UpdateImage(ctx context.Context, imageID uuid.UUID, input ImageInput) (*models.ItemImage, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error

	AddVariant(ctx context.Context, itemID uuid.UUID, input VariantInput) (*models.ItemVariant, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, input VariantInput) (*models.ItemVariant, error)
	DeactivateVariant(ctx context.Context, variantID uuid.UUID) error
}

type adminService struct {
	repo CatalogRepository
	tx   txRunner
}

// NewAdminService builds the catalog admin service.
func NewAdminService(repo CatalogRepository, tx txRunner) (AdminService, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &adminService{repo: repo, tx: tx}, nil
}

func (s *adminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *adminService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if input.Slug == "" || input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug and title are required")
	}
	category := &models.Category{
		ID:       uuid.New(),
		Slug:     input.Slug,
		Title:    input.Title,
		ParentID: input.ParentID,
		SortRank: input.SortRank,
		IsActive: true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Slug != "" {
		category.Slug = input.Slug
	}
	if input.Title != "" {
		category.Title = input.Title
	}
	if input.ParentID != nil {
		category.ParentID = input.ParentID
	}
	category.SortRank = input.SortRank
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return updated, nil
}

func (s *adminService) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return err
	}
	category.IsActive = false
	if _, err := s.repo.UpdateCategory(ctx, category); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate category")
	}
	return nil
}

func (s *adminService) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *adminService) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tags")
	}
	return rows, nil
}

func (s *adminService) CreateTag(ctx context.Context, input TagInput) (*models.Tag, error) {
	if input.Slug == "" || input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug and title are required")
	}
	tag := &models.Tag{
		ID:       uuid.New(),
		Slug:     input.Slug,
		Title:    input.Title,
		IsActive: true,
	}
	if input.IsActive != nil {
		tag.IsActive = *input.IsActive
	}
	created, err := s.repo.CreateTag(ctx, tag)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tag slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tag")
	}
	return created, nil
}

func (s *adminService) UpdateTag(ctx context.Context, id uuid.UUID, input TagInput) (*models.Tag, error) {
	tag, err := s.loadTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Slug != "" {
		tag.Slug = input.Slug
	}
	if input.Title != "" {
		tag.Title = input.Title
	}
	if input.IsActive != nil {
		tag.IsActive = *input.IsActive
	}
	updated, err := s.repo.UpdateTag(ctx, tag)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tag slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tag")
	}
	return updated, nil
}

func (s *adminService) DeactivateTag(ctx context.Context, id uuid.UUID) error {
	tag, err := s.loadTag(ctx, id)
	if err != nil {
		return err
	}
	tag.IsActive = false
	if _, err := s.repo.UpdateTag(ctx, tag); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate tag")
	}
	return nil
}

func (s *adminService) loadTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	tag, err := s.repo.FindTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tag")
	}
	return tag, nil
}

func (s *adminService) ListItems(ctx context.Context, params pagination.Params, filters AdminItemFilters) (*ItemList, error) {
	list, err := s.repo.ListAdminItems(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return list, nil
}

func (s *adminService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.loadItem(ctx, id)
}

func (s *adminService) CreateItem(ctx context.Context, input ItemInput) (*models.Item, error) {
	if input.Slug == "" || input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug and title are required")
	}

	item := &models.Item{
		ID:          uuid.New(),
		Slug:        input.Slug,
		Title:       input.Title,
		Description: input.Description,
		Brand:       input.Brand,
		SortRank:    input.SortRank,
		IsActive:    true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return err
		}
		if err := repo.ReplaceItemCategories(ctx, item.ID, input.CategoryIDs); err != nil {
			return err
		}
		return repo.ReplaceItemTags(ctx, item.ID, input.TagIDs)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return s.loadItem(ctx, item.ID)
}

func (s *adminService) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.Item, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Slug != "" {
		item.Slug = input.Slug
	}
	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Brand != nil {
		item.Brand = input.Brand
	}
	item.SortRank = input.SortRank
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.UpdateItem(ctx, item); err != nil {
			return err
		}
		if input.CategoryIDs != nil {
			if err := repo.ReplaceItemCategories(ctx, item.ID, input.CategoryIDs); err != nil {
				return err
			}
		}
		if input.TagIDs != nil {
			return repo.ReplaceItemTags(ctx, item.ID, input.TagIDs)
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	return s.loadItem(ctx, id)
}

func (s *adminService) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return err
	}
	item.IsActive = false
	if _, err := s.repo.UpdateItem(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate item")
	}
	return nil
}

func (s *adminService) loadItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func (s *adminService) AddImage(ctx context.Context, itemID uuid.UUID, input ImageInput) (*models.ItemImage, error) {
	if input.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url required")
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}

	image := &models.ItemImage{
		ID:        uuid.New(),
		ItemID:    itemID,
		URL:       input.URL,
		Alt:       input.Alt,
		SortOrder: input.SortOrder,
		IsMain:    input.IsMain,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsMain {
			if err := repo.ClearMainImage(ctx, itemID); err != nil {
				return err
			}
		}
		_, err := repo.CreateImage(ctx, image)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add image")
	}
	return image, nil
}

func (s *adminService) UpdateImage(ctx context.Context, imageID uuid.UUID, input ImageInput) (*models.ItemImage, error) {
	image, err := s.repo.FindImageByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load image")
	}

	if input.URL != "" {
		image.URL = input.URL
	}
	if input.Alt != nil {
		image.Alt = input.Alt
	}
	image.SortOrder = input.SortOrder
	image.IsMain = input.IsMain

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsMain {
			if err := repo.ClearMainImage(ctx, image.ItemID); err != nil {
				return err
			}
		}
		_, err := repo.UpdateImage(ctx, image)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update image")
	}
	return image, nil
}

func (s *adminService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	if _, err := s.repo.FindImageByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load image")
	}
	if err := s.repo.DeleteImage(ctx, imageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	return nil
}

func (s *adminService) AddVariant(ctx context.Context, itemID uuid.UUID, input VariantInput) (*models.ItemVariant, error) {
	if input.SKU == "" || input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku and title are required")
	}
	if input.PriceRub.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}

	variant := &models.ItemVariant{
		ID:                uuid.New(),
		ItemID:            itemID,
		SKU:               input.SKU,
		Title:             input.Title,
		Attributes:        input.Attributes,
		PriceRub:          input.PriceRub,
		CompareAtPriceRub: input.CompareAtPriceRub,
		Stock:             input.Stock,
		IsActive:          true,
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateVariant(ctx, variant); err != nil {
			return err
		}
		return repo.RecomputeItemStats(ctx, itemID)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "variant sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add variant")
	}
	return variant, nil
}

func (s *adminService) UpdateVariant(ctx context.Context, variantID uuid.UUID, input VariantInput) (*models.ItemVariant, error) {
	variant, err := s.loadVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}

	if input.SKU != "" {
		variant.SKU = input.SKU
	}
	if input.Title != "" {
		variant.Title = input.Title
	}
	if input.Attributes != nil {
		variant.Attributes = input.Attributes
	}
	if input.PriceRub.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if !input.PriceRub.IsZero() {
		variant.PriceRub = input.PriceRub
	}
	if input.CompareAtPriceRub != nil {
		variant.CompareAtPriceRub = input.CompareAtPriceRub
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	variant.Stock = input.Stock
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.UpdateVariant(ctx, variant); err != nil {
			return err
		}
		return repo.RecomputeItemStats(ctx, variant.ItemID)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "variant sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant")
	}
	return variant, nil
}

func (s *adminService) DeactivateVariant(ctx context.Context, variantID uuid.UUID) error {
	variant, err := s.loadVariant(ctx, variantID)
	if err != nil {
		return err
	}
	variant.IsActive = false

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.UpdateVariant(ctx, variant); err != nil {
			return err
		}
		return repo.RecomputeItemStats(ctx, variant.ItemID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate variant")
	}
	return nil
}

func (s *adminService) loadVariant(ctx context.Context, id uuid.UUID) (*models.ItemVariant, error) {
	variant, err := s.repo.FindVariantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	return variant, nil
}
