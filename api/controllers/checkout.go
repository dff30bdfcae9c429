package controllers

import (
	"net/http"

	"github.com/lavka-market/lavka-backend/api/responses"
	"github.com/lavka-market/lavka-backend/api/validators"
	"github.com/lavka-market/lavka-backend/internal/checkout"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/types"
)

type checkoutDeliveryPayload struct {
	Method  string         `json:"method" validate:"required"`
	Address map[string]any `json:"address"`
}

type checkoutContactPayload struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,max=32"`
	Email string `json:"email" validate:"required,email"`
}

type checkoutPayload struct {
	Delivery checkoutDeliveryPayload `json:"delivery" validate:"required"`
	Contact  checkoutContactPayload  `json:"contact" validate:"required"`
	Comment  string                  `json:"comment" validate:"omitempty,max=1000"`
}

// Checkout turns the authenticated user's cart into a placed order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		method, err := enums.ParseDeliveryMethod(payload.Delivery.Method)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method"))
			return
		}

		order, err := svc.Checkout(ctx, userID, checkout.Input{
			DeliveryMethod:  method,
			DeliveryAddress: types.JSONMap(payload.Delivery.Address),
			ContactName:     payload.Contact.Name,
			ContactPhone:    payload.Contact.Phone,
			Email:           payload.Contact.Email,
			Comment:         optionalString(payload.Comment),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}
