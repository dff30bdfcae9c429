package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/types"
)

// Input carries everything the customer submits at checkout.
type Input struct {
	DeliveryMethod  enums.DeliveryMethod
	DeliveryAddress types.JSONMap
	ContactName     string
	ContactPhone    string
	Email           string
	Comment         *string
}

// Fees holds the flat delivery fee per method.
type Fees struct {
	CourierRub decimal.Decimal
	PickupRub  decimal.Decimal
}

// NewFees parses the configured fee amounts.
func NewFees(cfg config.DeliveryConfig) (Fees, error) {
	courier, err := decimal.NewFromString(cfg.CourierFeeRub)
	if err != nil {
		return Fees{}, fmt.Errorf("parse courier fee %q: %w", cfg.CourierFeeRub, err)
	}
	pickup, err := decimal.NewFromString(cfg.PickupFeeRub)
	if err != nil {
		return Fees{}, fmt.Errorf("parse pickup fee %q: %w", cfg.PickupFeeRub, err)
	}
	return Fees{CourierRub: courier, PickupRub: pickup}, nil
}

// ForMethod returns the delivery fee for the chosen method.
func (f Fees) ForMethod(method enums.DeliveryMethod) decimal.Decimal {
	if method == enums.DeliveryMethodCourier {
		return f.CourierRub
	}
	return f.PickupRub
}
