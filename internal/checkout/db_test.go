package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  brand TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_rank INTEGER NOT NULL DEFAULT 0,
  min_price_rub NUMERIC,
  max_price_rub NUMERIC,
  has_stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS item_images (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  url TEXT NOT NULL,
  alt TEXT,
  sort_order INTEGER NOT NULL DEFAULT 0,
  is_main INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS item_variants (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  attributes TEXT,
  price_rub NUMERIC NOT NULL,
  compare_at_price_rub NUMERIC,
  stock INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty > 0),
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT uq_cart_items_cart_variant UNIQUE (cart_id, variant_id)
);`,
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

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func seedVariant(t *testing.T, conn *gorm.DB, sku, price string, stock int, active bool) *models.ItemVariant {
	t.Helper()

	item := &models.Item{
		ID:       uuid.New(),
		Slug:     "item-" + sku,
		Title:    "Item " + sku,
		IsActive: true,
	}
	require.NoError(t, conn.Omit("Categories", "Tags", "Images", "Variants").Create(item).Error)

	variant := &models.ItemVariant{
		ID:       uuid.New(),
		ItemID:   item.ID,
		SKU:      sku,
		Title:    "Variant " + sku,
		PriceRub: decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: active,
	}
	require.NoError(t, conn.Omit("Item").Create(variant).Error)
	return variant
}

func seedCartLine(t *testing.T, conn *gorm.DB, userID, variantID uuid.UUID, qty int) {
	t.Helper()

	var cartRow models.Cart
	err := conn.Where("user_id = ?", userID).First(&cartRow).Error
	if err == gorm.ErrRecordNotFound {
		cartRow = models.Cart{ID: uuid.New(), UserID: userID}
		require.NoError(t, conn.Omit("Items").Create(&cartRow).Error)
	} else {
		require.NoError(t, err)
	}

	require.NoError(t, conn.Create(&models.CartItem{
		ID:        uuid.New(),
		CartID:    cartRow.ID,
		VariantID: variantID,
		Qty:       qty,
	}).Error)
}
