package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/types"
)

// Template is a read-only starter layout. Applying one copies its pages and
// theme into a store; templates themselves are never mutated through the API.
type Template struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string              `gorm:"column:name;not null"`
	Description *string             `gorm:"column:description"`
	Thumbnail   *string             `gorm:"column:thumbnail"`
	Category    string              `gorm:"column:category;not null"`
	IsPremium   bool                `gorm:"column:is_premium;not null;default:false"`
	Pages       types.TemplatePages `gorm:"column:pages;type:jsonb;not null"`
	Theme       types.Theme         `gorm:"column:theme;type:jsonb;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
