package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/pagination"
)

type productRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter, offset, limit int) ([]models.Product, error)
	CountByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter) (int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type categoryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// ListResult is one page of products plus pagination totals.
type ListResult struct {
	Products   []ProductDTO      `json:"products"`
	Pagination pagination.Result `json:"pagination"`
}

// Service exposes product operations for store owners.
type Service interface {
	Create(ctx context.Context, userID, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	List(ctx context.Context, userID, storeID uuid.UUID, filter ListFilter, params pagination.Params) (*ListResult, error)
	Get(ctx context.Context, userID, productID uuid.UUID) (*ProductDTO, error)
	Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo       productRepository
	stores     storeFinder
	categories categoryFinder
}

func NewService(repo productRepository, stores storeFinder, categories categoryFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, stores: stores, categories: categories}, nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	inventory := 0
	if input.Inventory != nil {
		if *input.Inventory < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory cannot be negative")
		}
		inventory = *input.Inventory
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, storeID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		StoreID:     storeID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Images:      pq.StringArray(input.Images),
		Inventory:   inventory,
		IsActive:    isActive,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context, userID, storeID uuid.UUID, filter ListFilter, params pagination.Params) (*ListResult, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}
	params = pagination.Normalize(params)

	total, err := s.repo.CountByStore(ctx, storeID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	rows, err := s.repo.ListByStore(ctx, storeID, filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &ListResult{
		Products:   out,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Get(ctx context.Context, userID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Images != nil {
		product.Images = pq.StringArray(input.Images)
	}
	if input.ClearCategory {
		product.CategoryID = nil
	} else if input.CategoryID != nil {
		if err := s.checkCategory(ctx, product.StoreID, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}
	if input.Inventory != nil {
		if *input.Inventory < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory cannot be negative")
		}
		product.Inventory = *input.Inventory
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.loadOwnedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// checkCategory ensures the referenced category exists and belongs to the
// same store as the product.
func (s *service) checkCategory(ctx context.Context, storeID, categoryID uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if category.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeValidation, "category belongs to a different store")
	}
	return nil
}

func (s *service) loadOwnedStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store not owned by requester")
	}
	return store, nil
}

func (s *service) loadOwnedProduct(ctx context.Context, userID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if _, err := s.loadOwnedStore(ctx, userID, product.StoreID); err != nil {
		return nil, err
	}
	return product, nil
}
