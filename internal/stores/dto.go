package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/types"
)

// StoreDTO exposes tenant data in API responses.
type StoreDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Subdomain    string         `json:"subdomain"`
	CustomDomain *string        `json:"customDomain,omitempty"`
	OwnerID      uuid.UUID      `json:"ownerId"`
	Theme        types.Theme    `json:"theme"`
	Settings     types.Settings `json:"settings"`
	IsPublished  bool           `json:"isPublished"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	Name       string
	Subdomain  string
	TemplateID *uuid.UUID
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name         *string
	CustomDomain *string
	Theme        *types.Theme
	Settings     *types.Settings
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:           m.ID,
		Name:         m.Name,
		Subdomain:    m.Subdomain,
		CustomDomain: m.CustomDomain,
		OwnerID:      m.OwnerID,
		Theme:        m.Theme,
		Settings:     m.Settings,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
