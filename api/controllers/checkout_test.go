package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavka-market/lavka-backend/internal/checkout"
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
)

type stubCheckoutService struct {
	input checkout.Input
	order *models.Order
	err   error
}

func (s *stubCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, input checkout.Input) (*models.Order, error) {
	s.input = input
	return s.order, s.err
}

func placedOrder() *models.Order {
	return &models.Order{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Status:         enums.OrderStatusPlaced,
		Currency:       "RUB",
		SubtotalRub:    decimal.RequireFromString("500.00"),
		TotalRub:       decimal.RequireFromString("500.00"),
		DeliveryMethod: enums.DeliveryMethodPickup,
		PlacedAt:       time.Now().UTC(),
	}
}

func TestCheckout_Created(t *testing.T) {
	svc := &stubCheckoutService{order: placedOrder()}
	body := `{
		"delivery": {"method": "courier", "address": {"street": "Arbat 1", "city": "Moscow"}},
		"contact": {"name": "Alice", "phone": "+79001234567", "email": "alice@example.com"},
		"comment": "leave at the door"
	}`
	rec := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, enums.DeliveryMethodCourier, svc.input.DeliveryMethod)
	assert.Equal(t, "Arbat 1", svc.input.DeliveryAddress["street"])
	assert.Equal(t, "Alice", svc.input.ContactName)
	require.NotNil(t, svc.input.Comment)
	assert.Equal(t, "leave at the door", *svc.input.Comment)

	var envelope struct {
		Data orderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, enums.OrderStatusPlaced, envelope.Data.Status)
}

func TestCheckout_UnknownDeliveryMethod(t *testing.T) {
	body := `{
		"delivery": {"method": "drone"},
		"contact": {"name": "Alice", "phone": "+79001234567", "email": "alice@example.com"}
	}`
	rec := httptest.NewRecorder()
	Checkout(&stubCheckoutService{}, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_OutOfStockDetails(t *testing.T) {
	variantID := uuid.NewString()
	svc := &stubCheckoutService{
		err: pkgerrors.New(pkgerrors.CodeOutOfStock, "some items are out of stock").
			WithDetails(map[string]any{"variantIds": []string{variantID}}),
	}
	body := `{
		"delivery": {"method": "pickup"},
		"contact": {"name": "Alice", "phone": "+79001234567", "email": "alice@example.com"}
	}`
	rec := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				VariantIDs []string `json:"variantIds"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeOutOfStock), envelope.Error.Code)
	assert.Equal(t, []string{variantID}, envelope.Error.Details.VariantIDs)
}

func TestCheckout_RequiresContact(t *testing.T) {
	body := `{"delivery": {"method": "pickup"}, "contact": {"name": "", "phone": "", "email": ""}}`
	rec := httptest.NewRecorder()
	Checkout(&stubCheckoutService{}, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
