package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository

	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Touch(ctx context.Context, cartID uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	FindItem(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQty(ctx context.Context, itemID uuid.UUID, qty int) error
	DeleteItem(ctx context.Context, cartID, variantID uuid.UUID) error
	DeleteAllItems(ctx context.Context, cartID uuid.UUID) error

	FindVariantsWithItems(ctx context.Context, ids []uuid.UUID) ([]models.ItemVariant, error)
}
