package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/internal/catalog"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// CatalogCategories lists the active category tree in sort order.
func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		rows, err := svc.ListCategories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": newCategoryResponses(rows)})
	}
}

// CatalogTags lists the active tags.
func CatalogTags(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		rows, err := svc.ListTags(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"tags": newTagResponses(rows)})
	}
}

// CatalogItems lists active items with filtering, sorting and pagination.
func CatalogItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters, err := buildItemFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListItems(ctx, pagination.FromQuery(r.URL.Query()), filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, itemListResponse{
			Items: newItemSummaryResponses(list.Items),
			Page:  list.Page,
		})
	}
}

// CatalogItemBySlug returns one active item with images and variants.
func CatalogItemBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		item, err := svc.GetItemBySlug(ctx, slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newItemDetailResponse(item))
	}
}

func buildItemFilters(r *http.Request) (catalog.ItemFilters, error) {
	query := r.URL.Query()
	filters := catalog.ItemFilters{
		Query:        strings.TrimSpace(query.Get("q")),
		CategorySlug: strings.TrimSpace(query.Get("category")),
	}

	if raw := strings.TrimSpace(query.Get("tags")); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filters.TagSlugs = append(filters.TagSlugs, slug)
			}
		}
	}

	var err error
	if filters.PriceMin, err = parsePrice(query.Get("priceMin"), "priceMin"); err != nil {
		return catalog.ItemFilters{}, err
	}
	if filters.PriceMax, err = parsePrice(query.Get("priceMax"), "priceMax"); err != nil {
		return catalog.ItemFilters{}, err
	}
	if filters.PriceMin != nil && filters.PriceMax != nil && filters.PriceMin.GreaterThan(*filters.PriceMax) {
		return catalog.ItemFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "priceMin exceeds priceMax")
	}

	switch strings.TrimSpace(query.Get("inStock")) {
	case "", "false", "0":
	case "true", "1":
		filters.InStock = true
	default:
		return catalog.ItemFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "inStock must be a boolean")
	}

	if raw := strings.TrimSpace(query.Get("sort")); raw != "" {
		sort, err := enums.ParseItemSort(raw)
		if err != nil {
			return catalog.ItemFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
		}
		filters.Sort = sort
	}
	return filters, nil
}

func parsePrice(raw, name string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	if value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, name+" must not be negative")
	}
	return &value, nil
}
