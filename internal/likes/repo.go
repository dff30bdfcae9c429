package likes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// Repository encapsulates like persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a likes repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a like and ignores duplicates.
func (r *Repository) Add(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO likes (user_id, item_id) VALUES (?, ?) ON CONFLICT (user_id, item_id) DO NOTHING`, userID, itemID).
		Error
}

// Remove deletes the like if it exists.
func (r *Repository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.Like{}).Error
}

// ItemExists reports whether the item is present, active or not.
func (r *Repository) ItemExists(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLikedItems returns one page of the user's liked items. Inactive items
// stay liked but are not listed.
func (r *Repository) ListLikedItems(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedItemList, error) {
	params = params.Normalize()

	var total int64
	if err := r.likedQuery(ctx, userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Item
	err := r.likedQuery(ctx, userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_images.sort_order ASC")
		}).
		Preload("Categories").
		Preload("Tags").
		Order("items.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return &LikedItemList{Items: rows, Page: pagination.NewPage(params, total)}, nil
}

func (r *Repository) likedQuery(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN likes ON likes.item_id = items.id").
		Where("likes.user_id = ?", userID).
		Where("items.is_active = ?", true)
}
