package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/internal/auth"
	"github.com/storeforge/backend/internal/categories"
	"github.com/storeforge/backend/internal/orders"
	"github.com/storeforge/backend/internal/pages"
	"github.com/storeforge/backend/internal/products"
	"github.com/storeforge/backend/internal/storefront"
	"github.com/storeforge/backend/internal/stores"
	"github.com/storeforge/backend/internal/templates"
	"github.com/storeforge/backend/internal/users"
	pkgauth "github.com/storeforge/backend/pkg/auth"
	"github.com/storeforge/backend/pkg/config"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/logger"
	"github.com/storeforge/backend/pkg/pagination"
	pkgredis "github.com/storeforge/backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID, Email: "owner@example.com"}, nil
}

type stubStoreService struct{}

func (stubStoreService) Create(ctx context.Context, ownerID uuid.UUID, input stores.CreateStoreInput) (*stores.StoreDTO, error) {
	panic("unimplemented")
}

func (stubStoreService) Get(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error) {
	panic("unimplemented")
}

func (stubStoreService) List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*stores.ListResult, error) {
	return &stores.ListResult{Stores: []stores.StoreDTO{}}, nil
}

func (stubStoreService) Update(ctx context.Context, userID, storeID uuid.UUID, input stores.UpdateStoreInput) (*stores.StoreDTO, error) {
	panic("unimplemented")
}

func (stubStoreService) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	panic("unimplemented")
}

func (stubStoreService) Publish(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error) {
	panic("unimplemented")
}

func (stubStoreService) Unpublish(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error) {
	panic("unimplemented")
}

type stubPageService struct{}

func (stubPageService) Create(ctx context.Context, userID, storeID uuid.UUID, input pages.CreatePageInput) (*pages.PageDTO, error) {
	panic("unimplemented")
}

func (stubPageService) List(ctx context.Context, userID, storeID uuid.UUID) ([]pages.PageDTO, error) {
	panic("unimplemented")
}

func (stubPageService) Get(ctx context.Context, userID, pageID uuid.UUID) (*pages.PageDTO, error) {
	panic("unimplemented")
}

func (stubPageService) GetBySlug(ctx context.Context, userID, storeID uuid.UUID, slug string) (*pages.PageDTO, error) {
	panic("unimplemented")
}

func (stubPageService) Update(ctx context.Context, userID, pageID uuid.UUID, input pages.UpdatePageInput) (*pages.PageDTO, error) {
	panic("unimplemented")
}

func (stubPageService) UpdateBlocks(ctx context.Context, userID, pageID uuid.UUID, input pages.UpdateBlocksInput) (*pages.PageDTO, error) {
	panic("unimplemented")
}

func (stubPageService) Delete(ctx context.Context, userID, pageID uuid.UUID) error {
	panic("unimplemented")
}

type stubProductService struct{}

func (stubProductService) Create(ctx context.Context, userID, storeID uuid.UUID, input products.CreateProductInput) (*products.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductService) List(ctx context.Context, userID, storeID uuid.UUID, filter products.ListFilter, params pagination.Params) (*products.ListResult, error) {
	panic("unimplemented")
}

func (stubProductService) Get(ctx context.Context, userID, productID uuid.UUID) (*products.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductService) Update(ctx context.Context, userID, productID uuid.UUID, input products.UpdateProductInput) (*products.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	panic("unimplemented")
}

type stubCategoryService struct{}

func (stubCategoryService) Create(ctx context.Context, userID, storeID uuid.UUID, input categories.CreateCategoryInput) (*categories.CategoryDTO, error) {
	panic("unimplemented")
}

func (stubCategoryService) List(ctx context.Context, userID, storeID uuid.UUID) ([]categories.CategoryDTO, error) {
	panic("unimplemented")
}

func (stubCategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, input categories.UpdateCategoryInput) (*categories.CategoryDTO, error) {
	panic("unimplemented")
}

func (stubCategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	panic("unimplemented")
}

type stubOrderService struct{}

func (stubOrderService) Create(ctx context.Context, storeID uuid.UUID, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrderService) List(ctx context.Context, userID, storeID uuid.UUID, filter orders.ListFilter, params pagination.Params) (*orders.ListResult, error) {
	panic("unimplemented")
}

func (stubOrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrderService) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, input orders.UpdateStatusInput) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

type stubTemplateService struct{}

func (stubTemplateService) List(ctx context.Context, category string) ([]templates.TemplateDTO, error) {
	return []templates.TemplateDTO{}, nil
}

func (stubTemplateService) Get(ctx context.Context, id uuid.UUID) (*templates.TemplateDTO, error) {
	panic("unimplemented")
}

type stubStorefrontService struct {
	resolve func(ctx context.Context, subdomain string) (*storefront.StorefrontDTO, error)
}

func (s stubStorefrontService) Resolve(ctx context.Context, subdomain string) (*storefront.StorefrontDTO, error) {
	if s.resolve != nil {
		return s.resolve(ctx, subdomain)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
}

func (stubStorefrontService) GetByID(ctx context.Context, storeID uuid.UUID) (*storefront.StorefrontDTO, error) {
	panic("unimplemented")
}

func (stubStorefrontService) GetPage(ctx context.Context, storeID uuid.UUID, slug string) (*storefront.PublicPageDTO, error) {
	panic("unimplemented")
}

func (stubStorefrontService) ListProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID, params pagination.Params) (*storefront.ProductListResult, error) {
	panic("unimplemented")
}

func (stubStorefrontService) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*storefront.PublicProductDTO, error) {
	panic("unimplemented")
}

func (stubStorefrontService) ListCategories(ctx context.Context, storeID uuid.UUID) ([]storefront.PublicCategoryDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, front storefront.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	if front == nil {
		front = stubStorefrontService{}
	}
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*pkgredis.Client)(nil),
		nil, // prometheus registry
		nil, // http metrics
		stubSessionManager{},
		stubAuthService{},
		stubStoreService{},
		stubPageService{},
		stubProductService{},
		stubCategoryService{},
		stubOrderService{},
		stubTemplateService{},
		front,
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "owner@example.com",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	for _, path := range []string{"/api/v1/stores", "/api/v1/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token got %d", path, resp.Code)
		}
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for store listing got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for me got %d", resp.Code)
	}
}

func TestTemplateCatalogNeedsNoAuth(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for template catalog got %d", resp.Code)
	}
}

func TestPublicStorefrontNeedsNoAuth(t *testing.T) {
	front := stubStorefrontService{
		resolve: func(ctx context.Context, subdomain string) (*storefront.StorefrontDTO, error) {
			if subdomain != "sunny-side" {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
			}
			return &storefront.StorefrontDTO{
				Store: storefront.PublicStoreDTO{ID: uuid.New(), Name: "Sunny Side", Subdomain: subdomain},
			}, nil
		},
	}
	router := newTestRouter(testConfig(), front)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/stores/resolve/sunny-side", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public resolve got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/public/stores/resolve/missing", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown subdomain got %d", resp.Code)
	}
}
