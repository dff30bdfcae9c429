package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a curated catalog section. Categories form a single-parent tree.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string     `gorm:"column:slug;not null;uniqueIndex"`
	Title     string     `gorm:"column:title;not null"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid;index"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true;index"`
	SortRank  int        `gorm:"column:sort_rank;not null;default:0"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default naming.
func (Category) TableName() string {
	return "categories"
}
