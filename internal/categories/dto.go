package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/db/models"
)

// CategoryDTO is the wire shape of a product category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"storeId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryInput carries the fields of a new category. Slug is optional;
// when absent it is derived from the name.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Slug string `json:"slug" validate:"omitempty,min=1,max=120"`
}

// UpdateCategoryInput carries partial category updates.
type UpdateCategoryInput struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug *string `json:"slug" validate:"omitempty,min=1,max=120"`
}

// FromModel maps a category row onto its DTO.
func FromModel(category *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        category.ID,
		StoreID:   category.StoreID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
