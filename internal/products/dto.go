package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeforge/backend/pkg/db/models"
)

// ProductDTO is the wire shape of a product.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     uuid.UUID       `json:"storeId"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Inventory   int             `json:"inventory"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateProductInput carries the fields of a new product.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=5000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Inventory   *int            `json:"inventory" validate:"omitempty,min=0"`
	IsActive    *bool           `json:"isActive"`
}

// UpdateProductInput carries partial product updates. Nil fields are left
// untouched; ClearCategory detaches the product from its category.
type UpdateProductInput struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=5000"`
	Price         *decimal.Decimal `json:"price"`
	Images        []string         `json:"images" validate:"omitempty,dive,url"`
	CategoryID    *uuid.UUID       `json:"categoryId"`
	ClearCategory bool             `json:"clearCategory"`
	Inventory     *int             `json:"inventory" validate:"omitempty,min=0"`
	IsActive      *bool            `json:"isActive"`
}

// FromModel maps a product row onto its DTO.
func FromModel(product *models.Product) *ProductDTO {
	images := make([]string, len(product.Images))
	copy(images, product.Images)
	return &ProductDTO{
		ID:          product.ID,
		StoreID:     product.StoreID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Images:      images,
		Inventory:   product.Inventory,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
