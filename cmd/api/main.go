package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/storeforge/backend/api/routes"
	"github.com/storeforge/backend/internal/auth"
	"github.com/storeforge/backend/internal/categories"
	"github.com/storeforge/backend/internal/orders"
	"github.com/storeforge/backend/internal/pages"
	"github.com/storeforge/backend/internal/products"
	"github.com/storeforge/backend/internal/storefront"
	"github.com/storeforge/backend/internal/stores"
	"github.com/storeforge/backend/internal/templates"
	"github.com/storeforge/backend/internal/users"
	"github.com/storeforge/backend/pkg/auth/session"
	"github.com/storeforge/backend/pkg/config"
	"github.com/storeforge/backend/pkg/db"
	"github.com/storeforge/backend/pkg/logger"
	"github.com/storeforge/backend/pkg/metrics"
	"github.com/storeforge/backend/pkg/migrate"
	"github.com/storeforge/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	storeRepo := stores.NewRepository(gormDB)
	pageRepo := pages.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	categoryRepo := categories.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	templateRepo := templates.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	templateService, err := templates.NewService(templateRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create template service", err)
		os.Exit(1)
	}

	storeService, err := stores.NewService(storeRepo, pageRepo, templateRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	pageService, err := pages.NewService(pageRepo, storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create page service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productRepo, storeRepo, categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categoryRepo, storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderRepo, storeRepo, productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	storefrontService, err := storefront.NewService(storeRepo, pageRepo, productRepo, categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			promRegistry,
			httpMetrics,
			sessionManager,
			authService,
			storeService,
			pageService,
			productService,
			categoryService,
			orderService,
			templateService,
			storefrontService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
