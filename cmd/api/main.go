package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/libreria-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/libreria-backend/api/controllers/admin"
	"github.com/angelmondragon/libreria-backend/api/routes"
	"github.com/angelmondragon/libreria-backend/internal/admin"
	"github.com/angelmondragon/libreria-backend/internal/auth"
	"github.com/angelmondragon/libreria-backend/internal/cart"
	"github.com/angelmondragon/libreria-backend/internal/catalog"
	"github.com/angelmondragon/libreria-backend/internal/checkout"
	"github.com/angelmondragon/libreria-backend/internal/inventory"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/internal/users"
	"github.com/angelmondragon/libreria-backend/pkg/auth/session"
	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
	"github.com/angelmondragon/libreria-backend/pkg/metrics"
	"github.com/angelmondragon/libreria-backend/pkg/migrate"
	"github.com/angelmondragon/libreria-backend/pkg/redis"
	"github.com/angelmondragon/libreria-backend/pkg/security"
)

const shutdownTimeout = 10 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	books := repo.NewCRUD[models.Book](conn)

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	exitOnErr(logg, "catalog service", err)
	inventoryService, err := inventory.NewService(inventory.NewRepository(conn), books)
	exitOnErr(logg, "inventory service", err)
	ordersService, err := orders.NewService(ordersRepo, repo.NewCRUD[models.User](conn))
	exitOnErr(logg, "orders service", err)
	usersService, err := users.NewService(usersRepo, ordersRepo, security.NewHasher(cfg.Password))
	exitOnErr(logg, "users service", err)
	cartService, err := cart.NewService(cartRepo, dbClient, books)
	exitOnErr(logg, "cart service", err)
	checkoutService, err := checkout.NewService(dbClient, cartRepo, ordersRepo, metrics.NewCheckoutMetrics(registry))
	exitOnErr(logg, "checkout service", err)
	dashboard, err := admin.NewDashboard(catalogService, inventoryService, ordersService, usersService)
	exitOnErr(logg, "admin dashboard", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		Accounts:       usersService,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOnErr(logg, "auth service", err)

	handler := routes.NewRouter(routes.RouterParams{
		Config:      cfg,
		Logger:      logg,
		Gatherer:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Ready: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		Sessions:    sessionManager,
		RateLimits:  redisClient,
		Idempotency: redisClient,
		Accounts:    usersRepo,
		Auth:        authService,
		Catalog:     catalogService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Orders:      ordersService,
		Admin: admincontrollers.Resources{
			Categories: admin.Categories(catalogService),
			Suppliers:  admin.Suppliers(catalogService),
			Books:      admin.Books(catalogService),
			Inventory:  admin.Inventory(inventoryService),
			Orders:     admin.Orders(ordersService),
			Users:      admin.Users(usersService, ordersService),
			Dashboard:  dashboard,
			LowStock:   inventoryService,
		},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"db_driver": dbClient.Driver(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

func exitOnErr(logg *logger.Logger, component string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+component, err)
	os.Exit(1)
}
