package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/types"
)

// Store represents the canonical tenant model. Pages, products, categories,
// and orders hang off it and cascade on delete.
type Store struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Subdomain    string         `gorm:"column:subdomain;not null;uniqueIndex"`
	CustomDomain *string        `gorm:"column:custom_domain"`
	OwnerID      uuid.UUID      `gorm:"column:owner;type:uuid;not null"`
	Theme        types.Theme    `gorm:"column:theme;type:jsonb;not null"`
	Settings     types.Settings `gorm:"column:settings;type:jsonb;not null"`
	IsPublished  bool           `gorm:"column:is_published;not null;default:false"`
	Pages        []Page         `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
