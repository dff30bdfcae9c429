package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavka-market/lavka-backend/internal/orders"
	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type stubAdminOrdersService struct {
	filters    orders.AdminOrderFilters
	transition orders.TransitionInput
	list       *orders.OrderList
	order      *models.Order
	err        error
}

func (s *stubAdminOrdersService) List(ctx context.Context, params pagination.Params, filters orders.AdminOrderFilters) (*orders.OrderList, error) {
	s.filters = filters
	return s.list, s.err
}

func (s *stubAdminOrdersService) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubAdminOrdersService) Transition(ctx context.Context, orderID uuid.UUID, input orders.TransitionInput) (*models.Order, error) {
	s.transition = input
	return s.order, s.err
}

func TestAdminOrdersList_StatusFilter(t *testing.T) {
	svc := &stubAdminOrdersService{list: &orders.OrderList{Page: pagination.NewPage(pagination.Params{}, 0)}}
	rec := httptest.NewRecorder()
	AdminOrdersList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?status=paid&email=alice@", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filters.Status)
	assert.Equal(t, enums.OrderStatusPaid, *svc.filters.Status)
	assert.Equal(t, "alice@", svc.filters.Email)
}

func TestAdminOrdersList_BadStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminOrdersList(&stubAdminOrdersService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?status=lost", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOrdersTransition(t *testing.T) {
	order := placedOrder()
	order.Status = enums.OrderStatusPaid
	svc := &stubAdminOrdersService{order: order}

	router := chi.NewRouter()
	router.Post("/orders/{orderId}/transition", AdminOrdersTransition(svc, nil))

	body := bytes.NewBufferString(`{"to": "paid", "note": "wire received"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/"+order.ID.String()+"/transition", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.OrderStatusPaid, svc.transition.To)
	require.NotNil(t, svc.transition.Note)
	assert.Equal(t, "wire received", *svc.transition.Note)
}

func TestAdminOrdersTransition_Invalid(t *testing.T) {
	svc := &stubAdminOrdersService{err: pkgerrors.New(pkgerrors.CodeInvalidTransition, "cannot move placed to delivered")}

	router := chi.NewRouter()
	router.Post("/orders/{orderId}/transition", AdminOrdersTransition(svc, nil))

	body := bytes.NewBufferString(`{"to": "delivered"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/"+uuid.NewString()+"/transition", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
