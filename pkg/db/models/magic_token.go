package models

import (
	"time"

	"github.com/google/uuid"
)

// MagicToken stores the hashed single-use login token sent by email.
type MagicToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email      string     `gorm:"column:email;not null;index"`
	TokenHash  string     `gorm:"column:token_hash;not null"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null;index"`
	ConsumedAt *time.Time `gorm:"column:consumed_at;index"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default naming.
func (MagicToken) TableName() string {
	return "auth_magic_tokens"
}
