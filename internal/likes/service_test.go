package likes

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

func setupLikesTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS item_categories (
  item_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  PRIMARY KEY (item_id, category_id)
);`,
		`CREATE TABLE IF NOT EXISTS item_tags (
  item_id TEXT NOT NULL,
  tag_id TEXT NOT NULL,
  PRIMARY KEY (item_id, tag_id)
);`,
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  parent_id TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_rank INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS tags (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS likes (
  user_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  PRIMARY KEY (user_id, item_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedItem(t *testing.T, conn *gorm.DB, slug string, active bool) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:       uuid.New(),
		Slug:     slug,
		Title:    "Item " + slug,
		IsActive: active,
	}
	require.NoError(t, conn.Omit("Categories", "Tags", "Images", "Variants").Create(item).Error)
	return item
}

func newLikesService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupLikesTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func TestLike_Idempotent(t *testing.T) {
	svc, conn := newLikesService(t)
	ctx := context.Background()
	userID := uuid.New()
	item := seedItem(t, conn, "tea", true)

	require.NoError(t, svc.Like(ctx, userID, item.ID))
	require.NoError(t, svc.Like(ctx, userID, item.ID), "second like is a no-op")

	var count int64
	require.NoError(t, conn.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLike_UnknownItem(t *testing.T) {
	svc, _ := newLikesService(t)

	err := svc.Like(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUnlike_Idempotent(t *testing.T) {
	svc, conn := newLikesService(t)
	ctx := context.Background()
	userID := uuid.New()
	item := seedItem(t, conn, "tea", true)

	require.NoError(t, svc.Like(ctx, userID, item.ID))
	require.NoError(t, svc.Unlike(ctx, userID, item.ID))
	require.NoError(t, svc.Unlike(ctx, userID, item.ID), "unliking twice is a no-op")

	var count int64
	require.NoError(t, conn.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestList_SkipsInactiveItems(t *testing.T) {
	svc, conn := newLikesService(t)
	ctx := context.Background()
	userID := uuid.New()

	visible := seedItem(t, conn, "tea", true)
	hidden := seedItem(t, conn, "coffee", false)

	require.NoError(t, svc.Like(ctx, userID, visible.ID))
	require.NoError(t, svc.Like(ctx, userID, hidden.ID))

	list, err := svc.List(ctx, userID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, visible.ID, list.Items[0].ID)
	assert.Equal(t, int64(1), list.Page.Total)
}
