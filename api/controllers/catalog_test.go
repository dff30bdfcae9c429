package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavka-market/lavka-backend/internal/catalog"
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type stubCatalogService struct {
	filters catalog.ItemFilters
	list    *catalog.ItemList
	item    *models.Item
	err     error
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: uuid.New(), Slug: "drinks", Title: "Drinks", IsActive: true}}, s.err
}

func (s *stubCatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return []models.Tag{{ID: uuid.New(), Slug: "new", Title: "New", IsActive: true}}, s.err
}

func (s *stubCatalogService) ListItems(ctx context.Context, params pagination.Params, filters catalog.ItemFilters) (*catalog.ItemList, error) {
	s.filters = filters
	return s.list, s.err
}

func (s *stubCatalogService) GetItemBySlug(ctx context.Context, slug string) (*models.Item, error) {
	return s.item, s.err
}

func sampleItem() models.Item {
	price := decimal.RequireFromString("129.90")
	return models.Item{
		ID:          uuid.New(),
		Slug:        "kvass-1l",
		Title:       "Kvass 1L",
		IsActive:    true,
		MinPriceRub: &price,
		MaxPriceRub: &price,
		HasStock:    true,
	}
}

func TestCatalogItems_FilterParsing(t *testing.T) {
	svc := &stubCatalogService{list: &catalog.ItemList{Items: []models.Item{sampleItem()}, Page: pagination.NewPage(pagination.Params{}, 1)}}
	rec := httptest.NewRecorder()
	target := "/items?q=kvass&category=drinks&tags=new,sale&priceMin=10&priceMax=200&inStock=true&sort=priceAsc"
	CatalogItems(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kvass", svc.filters.Query)
	assert.Equal(t, "drinks", svc.filters.CategorySlug)
	assert.Equal(t, []string{"new", "sale"}, svc.filters.TagSlugs)
	require.NotNil(t, svc.filters.PriceMin)
	assert.True(t, svc.filters.PriceMin.Equal(decimal.NewFromInt(10)))
	assert.True(t, svc.filters.InStock)
	assert.Equal(t, "priceAsc", svc.filters.Sort.String())
}

func TestCatalogItems_DecimalsAsStrings(t *testing.T) {
	svc := &stubCatalogService{list: &catalog.ItemList{Items: []models.Item{sampleItem()}, Page: pagination.NewPage(pagination.Params{}, 1)}}
	rec := httptest.NewRecorder()
	CatalogItems(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"minPriceRub":"129.9"`)
}

func TestCatalogItems_BadFilters(t *testing.T) {
	cases := map[string]string{
		"negative price": "/items?priceMin=-5",
		"min above max":  "/items?priceMin=100&priceMax=10",
		"bad bool":       "/items?inStock=maybe",
		"bad sort":       "/items?sort=alphabetical",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			CatalogItems(&stubCatalogService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCatalogItemBySlug(t *testing.T) {
	item := sampleItem()
	item.Variants = []models.ItemVariant{{
		ID:       uuid.New(),
		SKU:      "KV-1",
		Title:    "1L",
		PriceRub: decimal.RequireFromString("129.90"),
		Stock:    5,
		IsActive: true,
	}}
	svc := &stubCatalogService{item: &item}

	router := chi.NewRouter()
	router.Get("/items/{slug}", CatalogItemBySlug(svc, nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/kvass-1l", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data itemDetailResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "kvass-1l", envelope.Data.Slug)
	require.Len(t, envelope.Data.Variants, 1)
	assert.True(t, envelope.Data.Variants[0].InStock)
}

func TestCatalogItemBySlug_NotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "item not found")}
	router := chi.NewRouter()
	router.Get("/items/{slug}", CatalogItemBySlug(svc, nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
