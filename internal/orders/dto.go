package orders

import (
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// AdminOrderFilters narrows the admin order listing.
type AdminOrderFilters struct {
	Status *enums.OrderStatus
	Email  string
}

// OrderList is one page of orders.
type OrderList struct {
	Orders []models.Order
	Page   pagination.Page
}

// TransitionInput moves an order along the state machine.
type TransitionInput struct {
	To    enums.OrderStatus
	Note  *string
	Actor string
}
