package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/types"
)

// PublicStoreDTO is the storefront-visible store shape. Owner identity and
// settings internals stay off the public wire.
type PublicStoreDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Subdomain    string         `json:"subdomain"`
	CustomDomain *string        `json:"customDomain"`
	Theme        types.Theme    `json:"theme"`
	Settings     types.Settings `json:"settings"`
}

// PublicPageDTO is a rendered page payload for shoppers.
type PublicPageDTO struct {
	ID     uuid.UUID    `json:"id"`
	Slug   string       `json:"slug"`
	Title  string       `json:"title"`
	Blocks types.Blocks `json:"blocks"`
	IsHome bool         `json:"isHome"`
}

// PublicProductDTO omits inventory internals from the public catalog.
type PublicProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	InStock     bool            `json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PublicCategoryDTO is the public category shape.
type PublicCategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// StorefrontDTO bundles everything a storefront needs to boot: the store
// chrome plus its page list.
type StorefrontDTO struct {
	Store PublicStoreDTO  `json:"store"`
	Pages []PublicPageDTO `json:"pages"`
}

func publicStoreFromModel(store *models.Store) PublicStoreDTO {
	return PublicStoreDTO{
		ID:           store.ID,
		Name:         store.Name,
		Subdomain:    store.Subdomain,
		CustomDomain: store.CustomDomain,
		Theme:        store.Theme,
		Settings:     store.Settings,
	}
}

func publicPageFromModel(page *models.Page) PublicPageDTO {
	return PublicPageDTO{
		ID:     page.ID,
		Slug:   page.Slug,
		Title:  page.Title,
		Blocks: page.Blocks,
		IsHome: page.IsHome,
	}
}

func publicProductFromModel(product *models.Product) PublicProductDTO {
	images := make([]string, len(product.Images))
	copy(images, product.Images)
	return PublicProductDTO{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Images:      images,
		InStock:     product.Inventory > 0,
		CreatedAt:   product.CreatedAt,
	}
}

func publicCategoryFromModel(category *models.Category) PublicCategoryDTO {
	return PublicCategoryDTO{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}
