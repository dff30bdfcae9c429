package likes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

// LikedItemList is one page of liked items.
type LikedItemList struct {
	Items []models.Item
	Page  pagination.Page
}

// Service exposes the saved-items surface.
type Service interface {
	Like(ctx context.Context, userID, itemID uuid.UUID) error
	Unlike(ctx context.Context, userID, itemID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedItemList, error)
}

type service struct {
	repo *Repository
}

// NewService builds the likes service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("likes repository required")
	}
	return &service{repo: repo}, nil
}

// Like saves the item for the user. Liking twice is a no-op.
func (s *service) Like(ctx context.Context, userID, itemID uuid.UUID) error {
	exists, err := s.repo.ItemExists(ctx, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check item")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if err := s.repo.Add(ctx, userID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save like")
	}
	return nil
}

// Unlike removes the like. Removing a missing like is a no-op.
func (s *service) Unlike(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.repo.Remove(ctx, userID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove like")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedItemList, error) {
	list, err := s.repo.ListLikedItems(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list liked items")
	}
	return list, nil
}
