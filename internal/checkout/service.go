package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/internal/cart"
	"github.com/lavka-market/lavka-backend/internal/catalog"
	"github.com/lavka-market/lavka-backend/internal/orders"
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service converts a cart into a placed order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error)
}

type service struct {
	tx      txRunner
	carts   cart.CartRepository
	catalog catalog.CatalogRepository
	orders  orders.OrdersRepository
	fees    Fees
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	carts cart.CartRepository,
	catalogRepo catalog.CatalogRepository,
	ordersRepo orders.OrdersRepository,
	fees Fees,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{tx: tx, carts: carts, catalog: catalogRepo, orders: ordersRepo, fees: fees}, nil
}

// Checkout validates the cart against live stock, snapshots prices, places the
// order and clears the cart, all inside one transaction. Stock is re-checked by
// the guarded decrement at commit time, so two concurrent checkouts cannot both
// take the last unit.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		userCart, err := carts.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		lines, err := carts.ListItems(ctx, userCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart lines")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeCartEmpty, "cart is empty")
		}

		variantIDs := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			variantIDs = append(variantIDs, line.VariantID)
		}
		variants, err := carts.FindVariantsWithItems(ctx, variantIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variants")
		}
		variantByID := make(map[uuid.UUID]models.ItemVariant, len(variants))
		for _, variant := range variants {
			variantByID[variant.ID] = variant
		}

		var offending []uuid.UUID
		for _, line := range lines {
			variant, ok := variantByID[line.VariantID]
			if !ok || !variant.IsActive || variant.Stock < line.Qty {
				offending = append(offending, line.VariantID)
			}
		}
		if len(offending) > 0 {
			return outOfStockError(offending)
		}

		// Re-check under the transaction. A concurrent checkout may have taken
		// stock between the read above and this point.
		for _, line := range lines {
			ok, err := catalogRepo.DecrementStockGuarded(ctx, line.VariantID, line.Qty)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				offending = append(offending, line.VariantID)
			}
		}
		if len(offending) > 0 {
			return outOfStockError(offending)
		}

		order = buildOrder(userID, lines, variantByID, input, s.fees)
		if err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		touched := make(map[uuid.UUID]struct{})
		for _, variant := range variantByID {
			if _, seen := touched[variant.ItemID]; seen {
				continue
			}
			touched[variant.ItemID] = struct{}{}
			if err := catalogRepo.RecomputeItemStats(ctx, variant.ItemID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute item stats")
			}
		}

		if err := carts.DeleteAllItems(ctx, userCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return carts.Touch(ctx, userCart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func validateInput(input Input) error {
	if !input.DeliveryMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery method %q", input.DeliveryMethod))
	}
	if input.DeliveryMethod == enums.DeliveryMethodCourier && len(input.DeliveryAddress) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "courier delivery requires an address")
	}
	if strings.TrimSpace(input.ContactName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact name required")
	}
	if strings.TrimSpace(input.ContactPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact phone required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact email required")
	}
	return nil
}

func outOfStockError(offending []uuid.UUID) error {
	ids := make([]string, 0, len(offending))
	for _, id := range offending {
		ids = append(ids, id.String())
	}
	return pkgerrors.New(pkgerrors.CodeOutOfStock, "some items are out of stock").
		WithDetails(map[string]any{"variantIds": ids})
}

func buildOrder(userID uuid.UUID, lines []models.CartItem, variantByID map[uuid.UUID]models.ItemVariant, input Input, fees Fees) *models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		variant := variantByID[line.VariantID]
		itemTitle := ""
		if variant.Item != nil {
			itemTitle = variant.Item.Title
		}
		lineTotal := variant.PriceRub.Mul(decimal.NewFromInt(int64(line.Qty)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ID:           uuid.New(),
			ItemID:       variant.ItemID,
			VariantID:    variant.ID,
			Title:        itemTitle,
			VariantTitle: variant.Title,
			SKU:          variant.SKU,
			UnitPriceRub: variant.PriceRub,
			Qty:          line.Qty,
			LineTotalRub: lineTotal,
		})
	}

	delivery := fees.ForMethod(input.DeliveryMethod)
	return &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          enums.OrderStatusPlaced,
		Currency:        "RUB",
		SubtotalRub:     subtotal,
		DeliveryRub:     delivery,
		TotalRub:        subtotal.Add(delivery),
		ContactName:     input.ContactName,
		ContactPhone:    input.ContactPhone,
		Email:           input.Email,
		DeliveryMethod:  input.DeliveryMethod,
		DeliveryAddress: input.DeliveryAddress,
		Comment:         input.Comment,
		PlacedAt:        time.Now().UTC(),
		Items:           items,
		Events: []models.OrderEvent{{
			ID:        uuid.New(),
			ToStatus:  enums.OrderStatusPlaced,
			CreatedBy: "system",
		}},
	}
}
