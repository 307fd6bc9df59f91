package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storeforge/backend/api/controllers"
	"github.com/storeforge/backend/api/middleware"
	"github.com/storeforge/backend/internal/auth"
	"github.com/storeforge/backend/internal/categories"
	"github.com/storeforge/backend/internal/orders"
	"github.com/storeforge/backend/internal/pages"
	"github.com/storeforge/backend/internal/products"
	"github.com/storeforge/backend/internal/storefront"
	"github.com/storeforge/backend/internal/stores"
	"github.com/storeforge/backend/internal/templates"
	"github.com/storeforge/backend/pkg/auth/session"
	"github.com/storeforge/backend/pkg/config"
	"github.com/storeforge/backend/pkg/db"
	"github.com/storeforge/backend/pkg/logger"
	"github.com/storeforge/backend/pkg/metrics"
	pkgredis "github.com/storeforge/backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	sessionManager sessionManager,
	authService auth.Service,
	storeService stores.Service,
	pageService pages.Service,
	productService products.Service,
	categoryService categories.Service,
	orderService orders.Service,
	templateService templates.Service,
	storefrontService storefront.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
		r.With(middleware.Auth(cfg.JWT, sessionManager, logg)).Get("/me", controllers.AuthMe(authService, logg))
	})

	// Public storefront surface. Draft stores are indistinguishable from
	// missing ones here.
	r.Route("/api/v1/public/stores", func(r chi.Router) {
		r.Get("/resolve/{subdomain}", controllers.StorefrontResolve(storefrontService, logg))
		r.Route("/{storeID}", func(r chi.Router) {
			r.Get("/", controllers.StorefrontGet(storefrontService, logg))
			r.Get("/pages/{slug}", controllers.StorefrontPage(storefrontService, logg))
			r.Get("/products", controllers.StorefrontProducts(storefrontService, logg))
			r.Get("/products/{productID}", controllers.StorefrontProduct(storefrontService, logg))
			r.Get("/categories", controllers.StorefrontCategories(storefrontService, logg))
			r.With(middleware.Idempotency(redisClient, logg)).Post("/orders", controllers.StorefrontCheckout(orderService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Route("/stores", func(r chi.Router) {
			// Idempotency matches on the fully resolved chi pattern, so it
			// is attached per endpoint rather than on the whole group.
			r.With(middleware.Idempotency(redisClient, logg)).Post("/", controllers.StoreCreate(storeService, logg))
			r.Get("/", controllers.StoreList(storeService, logg))
			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", controllers.StoreGet(storeService, logg))
				r.Patch("/", controllers.StoreUpdate(storeService, logg))
				r.Delete("/", controllers.StoreDelete(storeService, logg))
				r.Post("/publish", controllers.StorePublish(storeService, logg))
				r.Post("/unpublish", controllers.StoreUnpublish(storeService, logg))

				r.Post("/pages", controllers.PageCreate(pageService, logg))
				r.Get("/pages", controllers.PageList(pageService, logg))
				r.Get("/pages/{slug}", controllers.PageGetBySlug(pageService, logg))

				r.Post("/products", controllers.ProductCreate(productService, logg))
				r.Get("/products", controllers.ProductList(productService, logg))

				r.Post("/categories", controllers.CategoryCreate(categoryService, logg))
				r.Get("/categories", controllers.CategoryList(categoryService, logg))

				r.Get("/orders", controllers.OrderList(orderService, logg))
			})
		})

		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Get("/", controllers.PageGet(pageService, logg))
			r.Patch("/", controllers.PageUpdate(pageService, logg))
			r.Put("/blocks", controllers.PageUpdateBlocks(pageService, logg))
			r.Delete("/", controllers.PageDelete(pageService, logg))
		})

		r.Route("/products/{productID}", func(r chi.Router) {
			r.Get("/", controllers.ProductGet(productService, logg))
			r.Patch("/", controllers.ProductUpdate(productService, logg))
			r.Delete("/", controllers.ProductDelete(productService, logg))
		})

		r.Route("/categories/{categoryID}", func(r chi.Router) {
			r.Patch("/", controllers.CategoryUpdate(categoryService, logg))
			r.Delete("/", controllers.CategoryDelete(categoryService, logg))
		})

		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.Get("/", controllers.OrderGet(orderService, logg))
			r.Patch("/status", controllers.OrderUpdateStatus(orderService, logg))
		})
	})

	// Template catalog is read-only and browsable before an account exists.
	r.Route("/api/v1/templates", func(r chi.Router) {
		r.Get("/", controllers.TemplateList(templateService, logg))
		r.Get("/{templateID}", controllers.TemplateGet(templateService, logg))
	})

	return r
}
