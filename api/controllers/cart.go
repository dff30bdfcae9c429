package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/api/validators"
	"github.com/lavka-market/lavka-backend/internal/cart"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
)

type mergeCartLinePayload struct {
	VariantID uuid.UUID `json:"variantId" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
}

type mergeCartPayload struct {
	Mode  string                 `json:"mode" validate:"required"`
	Items []mergeCartLinePayload `json:"items" validate:"required,dive"`
}

type setQuantityPayload struct {
	Qty int `json:"qty" validate:"required,min=1"`
}

type cartViewResponse struct {
	Cart     *cart.View         `json:"cart"`
	Warnings []cart.MergeWarning `json:"warnings,omitempty"`
}

// CartView returns the resolved cart for the authenticated user.
func CartView(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		view, err := svc.View(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewResponse{Cart: view})
	}
}

// CartMerge folds client-side lines into the server cart. Lines that cannot be
// honored come back as warnings, never as a failure.
func CartMerge(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload mergeCartPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		mode, err := enums.ParseMergeMode(payload.Mode)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid merge mode"))
			return
		}

		lines := make([]cart.MergeLine, 0, len(payload.Items))
		for _, item := range payload.Items {
			lines = append(lines, cart.MergeLine{VariantID: item.VariantID, Qty: item.Qty})
		}

		view, warnings, err := svc.Merge(ctx, userID, mode, lines)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewResponse{Cart: view, Warnings: warnings})
	}
}

// CartSetQuantity sets the absolute quantity of one cart line.
func CartSetQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		variantID, err := parseUUIDParam(r, "variantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload setQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.SetQuantity(ctx, userID, variantID, payload.Qty)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewResponse{Cart: view})
	}
}

// CartRemove drops one line from the cart. Removing an absent line succeeds.
func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		variantID, err := parseUUIDParam(r, "variantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Remove(ctx, userID, variantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewResponse{Cart: view})
	}
}

// CartClear empties the cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Clear(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewResponse{Cart: view})
	}
}
