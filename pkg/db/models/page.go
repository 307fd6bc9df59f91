package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/types"
)

// Page is an ordered block sequence addressed by slug within its store.
// Slug uniqueness is scoped to the store; exactly one page per store is home.
type Page struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID    `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_pages_store_slug"`
	Slug      string       `gorm:"column:slug;not null;uniqueIndex:idx_pages_store_slug"`
	Title     string       `gorm:"column:title;not null"`
	Blocks    types.Blocks `gorm:"column:blocks;type:jsonb;not null"`
	IsHome    bool         `gorm:"column:is_home;not null;default:false"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
