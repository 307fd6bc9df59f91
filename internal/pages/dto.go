package pages

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/types"
)

// PageDTO is the wire shape of an editor page.
type PageDTO struct {
	ID        uuid.UUID    `json:"id"`
	StoreID   uuid.UUID    `json:"storeId"`
	Slug      string       `json:"slug"`
	Title     string       `json:"title"`
	Blocks    types.Blocks `json:"blocks"`
	IsHome    bool         `json:"isHome"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CreatePageInput carries the fields of a new page.
type CreatePageInput struct {
	Slug   string       `json:"slug" validate:"required,min=1,max=120"`
	Title  string       `json:"title" validate:"required,min=1,max=200"`
	Blocks types.Blocks `json:"blocks"`
}

// UpdatePageInput carries the editable page metadata. Nil fields are left
// untouched.
type UpdatePageInput struct {
	Slug  *string `json:"slug" validate:"omitempty,min=1,max=120"`
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
}

// UpdateBlocksInput replaces the page content wholesale; the editor always
// saves the full block list.
type UpdateBlocksInput struct {
	Blocks types.Blocks `json:"blocks" validate:"required"`
}

// FromModel maps a page row onto its DTO.
func FromModel(page *models.Page) *PageDTO {
	return &PageDTO{
		ID:        page.ID,
		StoreID:   page.StoreID,
		Slug:      page.Slug,
		Title:     page.Title,
		Blocks:    page.Blocks,
		IsHome:    page.IsHome,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}
}
