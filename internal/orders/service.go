package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the customer-facing order surface.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	SimulatePayment(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

// AdminService exposes the back-office order surface.
type AdminService interface {
	List(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Transition(ctx context.Context, orderID uuid.UUID, input TransitionInput) (*models.Order, error)
}

type service struct {
	repo OrdersRepository
	tx   txRunner
}

// NewService builds the customer order service.
func NewService(repo OrdersRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	list, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// Cancel lets the owner back out of an order that has not been paid yet.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPlaced {
		return nil, pkgerrors.New(pkgerrors.CodeCancelNotAllowed, "order can no longer be canceled").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	now := time.Now().UTC()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return applyTransition(ctx, s.repo.WithTx(tx), order, enums.OrderStatusCanceled, transitionStamp{
			actor:      "user",
			canceledAt: &now,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, orderID)
}

// SimulatePayment marks a placed order as paid without a payment provider.
// Exposed only on dev-enabled deployments.
func (s *service) SimulatePayment(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPlaced {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidTransition, "only placed orders can be paid").
			WithDetails(map[string]any{"from": order.Status.String(), "to": enums.OrderStatusPaid.String()})
	}

	now := time.Now().UTC()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return applyTransition(ctx, s.repo.WithTx(tx), order, enums.OrderStatusPaid, transitionStamp{
			actor:  "user",
			paidAt: &now,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, orderID)
}

type adminService struct {
	repo OrdersRepository
	tx   txRunner
}

// NewAdminService builds the back-office order service.
func NewAdminService(repo OrdersRepository, tx txRunner) (AdminService, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &adminService{repo: repo, tx: tx}, nil
}

func (s *adminService) List(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", *filters.Status))
	}
	list, err := s.repo.ListAdmin(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *adminService) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// Transition moves an order along the state machine on behalf of an operator.
func (s *adminService) Transition(ctx context.Context, orderID uuid.UUID, input TransitionInput) (*models.Order, error) {
	if !input.To.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", input.To))
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(input.To) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidTransition, "transition not allowed").
			WithDetails(map[string]any{"from": order.Status.String(), "to": input.To.String()})
	}

	actor := input.Actor
	if actor == "" {
		actor = "admin"
	}

	now := time.Now().UTC()
	stamp := transitionStamp{actor: actor, note: input.Note}
	if input.To == enums.OrderStatusPaid && order.PaidAt == nil {
		stamp.paidAt = &now
	}
	if input.To == enums.OrderStatusCanceled {
		stamp.canceledAt = &now
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return applyTransition(ctx, s.repo.WithTx(tx), order, input.To, stamp)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

type transitionStamp struct {
	actor      string
	note       *string
	paidAt     *time.Time
	canceledAt *time.Time
}

func applyTransition(ctx context.Context, repo OrdersRepository, order *models.Order, to enums.OrderStatus, stamp transitionStamp) error {
	updates := map[string]any{"status": to}
	if stamp.paidAt != nil {
		updates["paid_at"] = *stamp.paidAt
	}
	if stamp.canceledAt != nil {
		updates["canceled_at"] = *stamp.canceledAt
	}
	if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	from := order.Status
	event := &models.OrderEvent{
		ID:         uuid.New(),
		OrderID:    order.ID,
		FromStatus: &from,
		ToStatus:   to,
		Note:       stamp.note,
		CreatedBy:  stamp.actor,
	}
	if err := repo.CreateEvent(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order event")
	}
	return nil
}
