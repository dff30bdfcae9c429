package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	"github.com/lavka-market/lavka-backend/pkg/enums"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the server-side cart operations.
type Service interface {
	View(ctx context.Context, userID uuid.UUID) (*View, error)
	Merge(ctx context.Context, userID uuid.UUID, mode enums.MergeMode, lines []MergeLine) (*View, []MergeWarning, error)
	SetQuantity(ctx context.Context, userID, variantID uuid.UUID, qty int) (*View, error)
	Remove(ctx context.Context, userID, variantID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) (*View, error)
}

type service struct {
	repo CartRepository
	tx   txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) View(ctx context.Context, userID uuid.UUID) (*View, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.buildView(ctx, s.repo, cart)
}

// Merge folds incoming lines into the cart. It never hard-fails on a bad line;
// lines that cannot be honored produce warnings instead.
func (s *service) Merge(ctx context.Context, userID uuid.UUID, mode enums.MergeMode, lines []MergeLine) (*View, []MergeWarning, error) {
	if !mode.IsValid() {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown merge mode %q", mode))
	}

	var warnings []MergeWarning
	var cart *models.Cart

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		cart, err = repo.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		variantIDs := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			variantIDs = append(variantIDs, line.VariantID)
		}
		variants, err := repo.FindVariantsWithItems(ctx, variantIDs)
		if err != nil {
			return err
		}
		variantMap := make(map[uuid.UUID]*models.ItemVariant, len(variants))
		for i := range variants {
			variantMap[variants[i].ID] = &variants[i]
		}

		if mode == enums.MergeModeReplace {
			if err := repo.DeleteAllItems(ctx, cart.ID); err != nil {
				return err
			}
		}

		existing, err := repo.ListItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		existingMap := make(map[uuid.UUID]*models.CartItem, len(existing))
		for i := range existing {
			existingMap[existing[i].VariantID] = &existing[i]
		}

		for _, line := range lines {
			variant, ok := variantMap[line.VariantID]
			if !ok {
				warnings = append(warnings, MergeWarning{VariantID: line.VariantID, Reason: enums.CartWarningReasonVariantNotFound})
				continue
			}
			if !variant.IsActive || variant.Stock <= 0 {
				warnings = append(warnings, MergeWarning{VariantID: line.VariantID, Reason: enums.CartWarningReasonOutOfStock})
				continue
			}

			qty := line.Qty
			current := existingMap[line.VariantID]
			switch mode {
			case enums.MergeModeAdd:
				if current != nil {
					qty += current.Qty
				}
			case enums.MergeModeMax:
				if current != nil && current.Qty > qty {
					qty = current.Qty
				}
			}

			if qty > variant.Stock {
				qty = variant.Stock
				warnings = append(warnings, MergeWarning{VariantID: line.VariantID, Reason: enums.CartWarningReasonOutOfStock})
			}
			if qty <= 0 {
				continue
			}

			if current == nil {
				item := &models.CartItem{
					ID:        uuid.New(),
					CartID:    cart.ID,
					VariantID: variant.ID,
					Qty:       qty,
				}
				if err := repo.CreateItem(ctx, item); err != nil {
					return err
				}
				existingMap[variant.ID] = item
			} else if err := repo.UpdateItemQty(ctx, current.ID, qty); err != nil {
				return err
			}
		}

		return repo.Touch(ctx, cart.ID)
	})
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge cart")
	}

	view, err := s.buildView(ctx, s.repo, cart)
	if err != nil {
		return nil, nil, err
	}
	return view, warnings, nil
}

// SetQuantity updates one existing line to an exact quantity.
func (s *service) SetQuantity(ctx context.Context, userID, variantID uuid.UUID, qty int) (*View, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	item, err := s.repo.FindItem(ctx, cart.ID, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}

	if err := s.repo.UpdateItemQty(ctx, item.ID, qty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	if err := s.repo.Touch(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch cart")
	}
	return s.buildView(ctx, s.repo, cart)
}

// Remove deletes one line. Removing an absent line is a no-op.
func (s *service) Remove(ctx context.Context, userID, variantID uuid.UUID) (*View, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.DeleteItem(ctx, cart.ID, variantID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	if err := s.repo.Touch(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch cart")
	}
	return s.buildView(ctx, s.repo, cart)
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*View, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.DeleteAllItems(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	if err := s.repo.Touch(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch cart")
	}
	return s.buildView(ctx, s.repo, cart)
}

func (s *service) buildView(ctx context.Context, repo CartRepository, cart *models.Cart) (*View, error) {
	items, err := repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}

	view := &View{
		ID:        cart.ID,
		Items:     []Line{},
		Totals:    Totals{SubtotalRub: decimal.Zero},
		UpdatedAt: cart.UpdatedAt,
	}
	if len(items) == 0 {
		return view, nil
	}

	variantIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		variantIDs = append(variantIDs, item.VariantID)
	}
	variants, err := repo.FindVariantsWithItems(ctx, variantIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart variants")
	}
	variantMap := make(map[uuid.UUID]*models.ItemVariant, len(variants))
	for i := range variants {
		variantMap[variants[i].ID] = &variants[i]
	}

	for _, item := range items {
		variant, ok := variantMap[item.VariantID]
		if !ok || variant.Item == nil {
			continue
		}
		lineTotal := variant.PriceRub.Mul(decimal.NewFromInt(int64(item.Qty)))
		view.Items = append(view.Items, Line{
			VariantID:    variant.ID,
			ItemID:       variant.Item.ID,
			Slug:         variant.Item.Slug,
			Title:        variant.Item.Title,
			VariantTitle: variant.Title,
			SKU:          variant.SKU,
			Qty:          item.Qty,
			UnitPriceRub: variant.PriceRub,
			LineTotalRub: lineTotal,
			Available:    variant.IsActive && variant.Stock > 0,
			Stock:        variant.Stock,
			ImageURL:     mainImageURL(variant.Item),
		})
		view.Totals.ItemsCount += item.Qty
		view.Totals.SubtotalRub = view.Totals.SubtotalRub.Add(lineTotal)
	}
	return view, nil
}

func mainImageURL(item *models.Item) *string {
	if len(item.Images) == 0 {
		return nil
	}
	for i := range item.Images {
		if item.Images[i].IsMain {
			return &item.Images[i].URL
		}
	}
	return &item.Images[0].URL
}
