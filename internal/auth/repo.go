package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/pkg/db/models"
)

// Repository persists magic link and refresh tokens. Only hashes are stored.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an auth repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateMagicToken(ctx context.Context, token *models.MagicToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindValidMagicToken returns the unconsumed, unexpired token for the hash.
func (r *Repository) FindValidMagicToken(ctx context.Context, tokenHash string, now time.Time) (*models.MagicToken, error) {
	var token models.MagicToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Where("consumed_at IS NULL").
		Where("expires_at > ?", now).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *Repository) ConsumeMagicToken(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.MagicToken{}).
		Where("id = ?", id).
		Where("consumed_at IS NULL").
		UpdateColumn("consumed_at", at).Error
}

func (r *Repository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindValidRefreshToken returns the active refresh token for the hash.
func (r *Repository) FindValidRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", now).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		UpdateColumn("revoked_at", at).Error
}

// RevokeRefreshTokenByHash revokes whatever active token matches the hash.
// Revoking an unknown or already revoked token is a no-op.
func (r *Repository) RevokeRefreshTokenByHash(ctx context.Context, tokenHash string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Where("revoked_at IS NULL").
		UpdateColumn("revoked_at", at).Error
}
