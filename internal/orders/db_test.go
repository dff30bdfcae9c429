package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL,
  currency TEXT NOT NULL DEFAULT 'RUB',
  subtotal_rub NUMERIC NOT NULL,
  delivery_rub NUMERIC NOT NULL DEFAULT 0,
  total_rub NUMERIC NOT NULL,
  contact_name TEXT NOT NULL,
  contact_phone TEXT NOT NULL,
  email TEXT NOT NULL,
  delivery_method TEXT NOT NULL,
  delivery_address TEXT,
  comment TEXT,
  placed_at DATETIME NOT NULL,
  paid_at DATETIME,
  canceled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  title TEXT NOT NULL,
  variant_title TEXT NOT NULL,
  sku TEXT NOT NULL,
  unit_price_rub NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty > 0),
  line_total_rub NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_events (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  from_status TEXT,
  to_status TEXT NOT NULL,
  note TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

type stubTxRunner struct {
	db *gorm.DB
}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(s.db)
}

func seedOrder(t *testing.T, conn *gorm.DB, userID uuid.UUID, status enums.OrderStatus, email string) *models.Order {
	t.Helper()

	subtotal := decimal.RequireFromString("500.00")
	placed := enums.OrderStatusPlaced
	order := &models.Order{
		ID:             uuid.New(),
		UserID:         userID,
		Status:         status,
		SubtotalRub:    subtotal,
		DeliveryRub:    decimal.Zero,
		TotalRub:       subtotal,
		ContactName:    "Ivan",
		ContactPhone:   "+79990001122",
		Email:          email,
		DeliveryMethod: enums.DeliveryMethodPickup,
		PlacedAt:       time.Now().UTC(),
		Items: []models.OrderItem{{
			ID:           uuid.New(),
			ItemID:       uuid.New(),
			VariantID:    uuid.New(),
			Title:        "Tea",
			VariantTitle: "100g",
			SKU:          "TEA-1",
			UnitPriceRub: decimal.RequireFromString("250.00"),
			Qty:          2,
			LineTotalRub: subtotal,
		}},
		Events: []models.OrderEvent{{
			ID:        uuid.New(),
			ToStatus:  placed,
			CreatedBy: "system",
		}},
	}
	require.NoError(t, conn.Create(order).Error)
	return order
}
