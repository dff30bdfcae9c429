package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
)

func newAdminService(t *testing.T) (AdminService, *Repository) {
	t.Helper()
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewAdminService(repo, stubTxRunner{db: conn})
	require.NoError(t, err)
	return svc, repo
}

func TestAdminCreateCategory_DuplicateSlug(t *testing.T) {
	svc, _ := newAdminService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{Slug: "drinks", Title: "Drinks"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CategoryInput{Slug: "drinks", Title: "Drinks Again"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestAdminItemLifecycle(t *testing.T) {
	svc, repo := newAdminService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Slug: "drinks", Title: "Drinks"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, ItemInput{
		Slug:        "tea",
		Title:       "Tea",
		Description: "Loose leaf",
		CategoryIDs: []uuid.UUID{category.ID},
	})
	require.NoError(t, err)
	require.Len(t, item.Categories, 1)

	variant, err := svc.AddVariant(ctx, item.ID, VariantInput{
		SKU:      "TEA-100",
		Title:    "100g",
		PriceRub: decimal.RequireFromString("299.99"),
		Stock:    10,
	})
	require.NoError(t, err)

	reloaded, err := repo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.MinPriceRub)
	assert.True(t, reloaded.MinPriceRub.Equal(variant.PriceRub))
	assert.True(t, reloaded.HasStock)

	require.NoError(t, svc.DeactivateVariant(ctx, variant.ID))

	reloaded, err = repo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.MinPriceRub, "deactivated variant must drop out of price stats")
	assert.False(t, reloaded.HasStock)

	require.NoError(t, svc.DeactivateItem(ctx, item.ID))
	reloaded, err = repo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}

func TestAdminAddImage_SingleMain(t *testing.T) {
	svc, repo := newAdminService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, ItemInput{Slug: "tea", Title: "Tea", Description: "Loose leaf"})
	require.NoError(t, err)

	first, err := svc.AddImage(ctx, item.ID, ImageInput{URL: "https://cdn.example/tea-1.jpg", IsMain: true})
	require.NoError(t, err)
	second, err := svc.AddImage(ctx, item.ID, ImageInput{URL: "https://cdn.example/tea-2.jpg", IsMain: true})
	require.NoError(t, err)

	images, err := repo.ListImages(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)

	mainCount := 0
	for _, image := range images {
		if image.IsMain {
			mainCount++
			assert.Equal(t, second.ID, image.ID)
		} else {
			assert.Equal(t, first.ID, image.ID)
		}
	}
	assert.Equal(t, 1, mainCount, "only one image may be main")
}

func TestAdminVariant_Validation(t *testing.T) {
	svc, _ := newAdminService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, ItemInput{Slug: "tea", Title: "Tea", Description: "Loose leaf"})
	require.NoError(t, err)

	_, err = svc.AddVariant(ctx, item.ID, VariantInput{SKU: "TEA-1", Title: "100g", PriceRub: decimal.RequireFromString("-1"), Stock: 1})
	require.Error(t, err)

	_, err = svc.AddVariant(ctx, item.ID, VariantInput{SKU: "TEA-1", Title: "100g", PriceRub: decimal.RequireFromString("10.00"), Stock: -1})
	require.Error(t, err)
}
