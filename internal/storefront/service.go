package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/internal/products"
	"github.com/storeforge/backend/pkg/db/models"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/pagination"
)

type storeResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*models.Store, error)
}

type pageReader interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Page, error)
	FindBySlug(ctx context.Context, storeID uuid.UUID, slug string) (*models.Page, error)
}

type productReader interface {
	ListByStore(ctx context.Context, storeID uuid.UUID, filter products.ListFilter, offset, limit int) ([]models.Product, error)
	CountByStore(ctx context.Context, storeID uuid.UUID, filter products.ListFilter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type categoryReader interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Category, error)
}

// ProductListResult is one public catalog page plus pagination totals.
type ProductListResult struct {
	Products   []PublicProductDTO `json:"products"`
	Pagination pagination.Result  `json:"pagination"`
}

// Service serves published stores to anonymous shoppers. Every lookup is
// gated on the published flag so draft stores stay invisible.
type Service interface {
	Resolve(ctx context.Context, subdomain string) (*StorefrontDTO, error)
	GetByID(ctx context.Context, storeID uuid.UUID) (*StorefrontDTO, error)
	GetPage(ctx context.Context, storeID uuid.UUID, slug string) (*PublicPageDTO, error)
	ListProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID, params pagination.Params) (*ProductListResult, error)
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*PublicProductDTO, error)
	ListCategories(ctx context.Context, storeID uuid.UUID) ([]PublicCategoryDTO, error)
}

type service struct {
	stores     storeResolver
	pages      pageReader
	products   productReader
	categories categoryReader
}

func NewService(stores storeResolver, pages pageReader, products productReader, categories categoryReader) (Service, error) {
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if pages == nil {
		return nil, fmt.Errorf("page repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{stores: stores, pages: pages, products: products, categories: categories}, nil
}

func (s *service) Resolve(ctx context.Context, subdomain string) (*StorefrontDTO, error) {
	store, err := s.stores.FindBySubdomain(ctx, strings.ToLower(strings.TrimSpace(subdomain)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve subdomain")
	}
	return s.assemble(ctx, store)
}

func (s *service) GetByID(ctx context.Context, storeID uuid.UUID) (*StorefrontDTO, error) {
	store, err := s.loadPublished(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, store)
}

func (s *service) GetPage(ctx context.Context, storeID uuid.UUID, slug string) (*PublicPageDTO, error) {
	if _, err := s.loadPublished(ctx, storeID); err != nil {
		return nil, err
	}

	page, err := s.pages.FindBySlug(ctx, storeID, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	dto := publicPageFromModel(page)
	return &dto, nil
}

func (s *service) ListProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID, params pagination.Params) (*ProductListResult, error) {
	if _, err := s.loadPublished(ctx, storeID); err != nil {
		return nil, err
	}
	params = pagination.Normalize(params)
	filter := products.ListFilter{CategoryID: categoryID, ActiveOnly: true}

	total, err := s.products.CountByStore(ctx, storeID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	rows, err := s.products.ListByStore(ctx, storeID, filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	out := make([]PublicProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, publicProductFromModel(&rows[i]))
	}
	return &ProductListResult{
		Products:   out,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*PublicProductDTO, error) {
	if _, err := s.loadPublished(ctx, storeID); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	// Hidden products stay hidden; a stale link must not leak drafts.
	if product.StoreID != storeID || !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := publicProductFromModel(product)
	return &dto, nil
}

func (s *service) ListCategories(ctx context.Context, storeID uuid.UUID) ([]PublicCategoryDTO, error) {
	if _, err := s.loadPublished(ctx, storeID); err != nil {
		return nil, err
	}

	rows, err := s.categories.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]PublicCategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, publicCategoryFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) assemble(ctx context.Context, store *models.Store) (*StorefrontDTO, error) {
	if !store.IsPublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	pages, err := s.pages.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pages")
	}

	out := &StorefrontDTO{
		Store: publicStoreFromModel(store),
		Pages: make([]PublicPageDTO, 0, len(pages)),
	}
	for i := range pages {
		out.Pages = append(out.Pages, publicPageFromModel(&pages[i]))
	}
	return out, nil
}

func (s *service) loadPublished(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if !store.IsPublished {
		// Draft stores are indistinguishable from missing ones publicly.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return store, nil
}
