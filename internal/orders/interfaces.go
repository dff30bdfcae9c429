package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// OrdersRepository defines persistence operations for orders and their events.
type OrdersRepository interface {
	WithTx(tx *gorm.DB) OrdersRepository

	CreateOrder(ctx context.Context, order *models.Order) error
	CreateEvent(ctx context.Context, event *models.OrderEvent) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListAdmin(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error)

	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
