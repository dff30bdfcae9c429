package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavka-market/lavka-backend/api/middleware"
	"github.com/lavka-market/lavka-backend/internal/cart"
	"github.com/lavka-market/lavka-backend/pkg/enums"
)

type stubCartService struct {
	view     *cart.View
	warnings []cart.MergeWarning
	mode     enums.MergeMode
	lines    []cart.MergeLine
	qty      int
	err      error
}

func (s *stubCartService) View(ctx context.Context, userID uuid.UUID) (*cart.View, error) {
	return s.view, s.err
}

func (s *stubCartService) Merge(ctx context.Context, userID uuid.UUID, mode enums.MergeMode, lines []cart.MergeLine) (*cart.View, []cart.MergeWarning, error) {
	s.mode = mode
	s.lines = lines
	return s.view, s.warnings, s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, userID, variantID uuid.UUID, qty int) (*cart.View, error) {
	s.qty = qty
	return s.view, s.err
}

func (s *stubCartService) Remove(ctx context.Context, userID, variantID uuid.UUID) (*cart.View, error) {
	return s.view, s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) (*cart.View, error) {
	return s.view, s.err
}

func emptyView() *cart.View {
	return &cart.View{ID: uuid.New(), Items: []cart.Line{}, UpdatedAt: time.Now().UTC()}
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func TestCartView_RequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	CartView(&stubCartService{view: emptyView()}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartMerge(t *testing.T) {
	variantID := uuid.New()
	svc := &stubCartService{
		view:     emptyView(),
		warnings: []cart.MergeWarning{{VariantID: variantID, Reason: enums.CartWarningReasonOutOfStock}},
	}
	rec := httptest.NewRecorder()
	body := fmt.Sprintf(`{"mode": "add", "items": [{"variantId": %q, "qty": 2}]}`, variantID)
	CartMerge(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.MergeModeAdd, svc.mode)
	require.Len(t, svc.lines, 1)
	assert.Equal(t, variantID, svc.lines[0].VariantID)
	assert.Equal(t, 2, svc.lines[0].Qty)

	var envelope struct {
		Data cartViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Warnings, 1)
	assert.Equal(t, enums.CartWarningReasonOutOfStock, envelope.Data.Warnings[0].Reason)
}

func TestCartMerge_UnknownMode(t *testing.T) {
	rec := httptest.NewRecorder()
	body := fmt.Sprintf(`{"mode": "union", "items": [{"variantId": %q, "qty": 1}]}`, uuid.New())
	CartMerge(&stubCartService{view: emptyView()}, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartSetQuantity(t *testing.T) {
	svc := &stubCartService{view: emptyView()}
	router := chi.NewRouter()
	router.Put("/cart/items/{variantId}", CartSetQuantity(svc, nil))

	rec := httptest.NewRecorder()
	target := "/cart/items/" + uuid.NewString()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, target, `{"qty": 4}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, svc.qty)
}

func TestCartSetQuantity_BadVariantID(t *testing.T) {
	router := chi.NewRouter()
	router.Put("/cart/items/{variantId}", CartSetQuantity(&stubCartService{view: emptyView()}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/cart/items/nope", `{"qty": 1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartClear(t *testing.T) {
	rec := httptest.NewRecorder()
	CartClear(&stubCartService{view: emptyView()}, nil).ServeHTTP(rec, authedRequest(http.MethodDelete, "/", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}
