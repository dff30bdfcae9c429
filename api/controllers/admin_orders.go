package controllers

import (
	"net/http"
	"strings"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/api/validators"
	"github.com/lavka-market/lavka-backend/internal/orders"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type transitionPayload struct {
	To   string  `json:"to" validate:"required"`
	Note *string `json:"note" validate:"omitempty,max=1000"`
}

// AdminOrdersList lists all orders filtered by status and customer email.
func AdminOrdersList(svc orders.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders admin service unavailable"))
			return
		}

		filters := orders.AdminOrderFilters{Email: strings.TrimSpace(r.URL.Query().Get("email"))}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(ctx, pagination.FromQuery(r.URL.Query()), filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderListResponse(list.Orders, list.Page))
	}
}

// AdminOrdersGet returns any order by id.
func AdminOrdersGet(svc orders.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders admin service unavailable"))
			return
		}
		orderID, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Get(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// AdminOrdersTransition moves an order along the status state machine and
// appends a history event.
func AdminOrdersTransition(svc orders.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders admin service unavailable"))
			return
		}
		orderID, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload transitionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		to, err := enums.ParseOrderStatus(payload.To)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.Transition(ctx, orderID, orders.TransitionInput{To: to, Note: payload.Note})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}
