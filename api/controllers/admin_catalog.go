package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/api/validators"
	"github.com/lavka-market/lavka-backend/internal/catalog"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
	"github.com/lavka-market/lavka-backend/pkg/types"
)

type categoryPayload struct {
	Slug     string     `json:"slug" validate:"required,max=200"`
	Title    string     `json:"title" validate:"required,max=200"`
	ParentID *uuid.UUID `json:"parentId"`
	SortRank int        `json:"sortRank"`
	IsActive *bool      `json:"isActive"`
}

func (p categoryPayload) toInput() catalog.CategoryInput {
	return catalog.CategoryInput{
		Slug:     p.Slug,
		Title:    p.Title,
		ParentID: p.ParentID,
		SortRank: p.SortRank,
		IsActive: p.IsActive,
	}
}

type tagPayload struct {
	Slug     string `json:"slug" validate:"required,max=200"`
	Title    string `json:"title" validate:"required,max=200"`
	IsActive *bool  `json:"isActive"`
}

func (p tagPayload) toInput() catalog.TagInput {
	return catalog.TagInput{Slug: p.Slug, Title: p.Title, IsActive: p.IsActive}
}

type itemPayload struct {
	Slug        string      `json:"slug" validate:"required,max=200"`
	Title       string      `json:"title" validate:"required,max=300"`
	Description string      `json:"description"`
	Brand       *string     `json:"brand" validate:"omitempty,max=200"`
	SortRank    int         `json:"sortRank"`
	IsActive    *bool       `json:"isActive"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
	TagIDs      []uuid.UUID `json:"tagIds"`
}

func (p itemPayload) toInput() catalog.ItemInput {
	return catalog.ItemInput{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Brand:       p.Brand,
		SortRank:    p.SortRank,
		IsActive:    p.IsActive,
		CategoryIDs: p.CategoryIDs,
		TagIDs:      p.TagIDs,
	}
}

type imagePayload struct {
	URL       string  `json:"url" validate:"required,url"`
	Alt       *string `json:"alt" validate:"omitempty,max=300"`
	SortOrder int     `json:"sortOrder"`
	IsMain    bool    `json:"isMain"`
}

func (p imagePayload) toInput() catalog.ImageInput {
	return catalog.ImageInput{URL: p.URL, Alt: p.Alt, SortOrder: p.SortOrder, IsMain: p.IsMain}
}

type variantPayload struct {
	SKU               string           `json:"sku" validate:"required,max=100"`
	Title             string           `json:"title" validate:"required,max=300"`
	Attributes        map[string]any   `json:"attributes"`
	PriceRub          decimal.Decimal  `json:"priceRub" validate:"required"`
	CompareAtPriceRub *decimal.Decimal `json:"compareAtPriceRub"`
	Stock             int              `json:"stock" validate:"min=0"`
	IsActive          *bool            `json:"isActive"`
}

func (p variantPayload) toInput() catalog.VariantInput {
	return catalog.VariantInput{
		SKU:               p.SKU,
		Title:             p.Title,
		Attributes:        types.JSONMap(p.Attributes),
		PriceRub:          p.PriceRub,
		CompareAtPriceRub: p.CompareAtPriceRub,
		Stock:             p.Stock,
		IsActive:          p.IsActive,
	}
}

// AdminCategoriesList returns every category, active or not.
func AdminCategoriesList(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
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

func AdminCategoryCreate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		var payload categoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.CreateCategory(ctx, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCategoryResponse(*record))
	}
}

func AdminCategoryUpdate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload categoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.UpdateCategory(ctx, id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCategoryResponse(*record))
	}
}

func AdminCategoryDeactivate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeactivateCategory(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

// AdminTagsList returns every tag, active or not.
func AdminTagsList(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
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

func AdminTagCreate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		var payload tagPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.CreateTag(ctx, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newTagResponse(*record))
	}
}

func AdminTagUpdate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "tagId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload tagPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.UpdateTag(ctx, id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newTagResponse(*record))
	}
}

func AdminTagDeactivate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "tagId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeactivateTag(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

// AdminItemsList lists items including inactive ones, filtered by q and isActive.
func AdminItemsList(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}

		filters := catalog.AdminItemFilters{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
		switch strings.TrimSpace(r.URL.Query().Get("isActive")) {
		case "":
		case "true", "1":
			active := true
			filters.IsActive = &active
		case "false", "0":
			active := false
			filters.IsActive = &active
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "isActive must be a boolean"))
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

func AdminItemGet(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.GetItem(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newItemDetailResponse(record))
	}
}

func AdminItemCreate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		var payload itemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.CreateItem(ctx, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newItemDetailResponse(record))
	}
}

func AdminItemUpdate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload itemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.UpdateItem(ctx, id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newItemDetailResponse(record))
	}
}

func AdminItemDeactivate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		id, err := parseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeactivateItem(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

func AdminImageAdd(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		itemID, err := parseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload imagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.AddImage(ctx, itemID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newImageResponse(*record))
	}
}

func AdminImageUpdate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		imageID, err := parseUUIDParam(r, "imageId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload imagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.UpdateImage(ctx, imageID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newImageResponse(*record))
	}
}

func AdminImageDelete(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		imageID, err := parseUUIDParam(r, "imageId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteImage(ctx, imageID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminVariantAdd(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		itemID, err := parseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload variantPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.AddVariant(ctx, itemID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newVariantResponse(*record))
	}
}

func AdminVariantUpdate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		variantID, err := parseUUIDParam(r, "variantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload variantPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		record, err := svc.UpdateVariant(ctx, variantID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newVariantResponse(*record))
	}
}

func AdminVariantDeactivate(svc catalog.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog admin service unavailable"))
			return
		}
		variantID, err := parseUUIDParam(r, "variantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeactivateVariant(ctx, variantID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
