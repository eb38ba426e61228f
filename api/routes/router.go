package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/libreria-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/libreria-backend/api/controllers/admin"
	"github.com/angelmondragon/libreria-backend/api/middleware"
	"github.com/angelmondragon/libreria-backend/internal/auth"
	"github.com/angelmondragon/libreria-backend/internal/cart"
	"github.com/angelmondragon/libreria-backend/internal/catalog"
	"github.com/angelmondragon/libreria-backend/internal/checkout"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/pkg/auth/session"
	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
	"github.com/angelmondragon/libreria-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/libreria-backend/pkg/redis"
)

type rateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type accountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RouterParams carries everything the HTTP surface depends on. Nil Redis
// stores disable the rate limit and idempotency middleware.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	Ready       map[string]controllers.Pinger

	Sessions    session.AccessSessionChecker
	RateLimits  rateLimitStore
	Idempotency pkgredis.IdempotencyStore
	Accounts    accountLoader

	Auth     auth.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkout.Service
	Orders   orders.Service
	Admin    admincontrollers.Resources
}

func NewRouter(p RouterParams) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginIdentifierLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterIdentifierLimit,
	)
	loginLimit := middleware.AuthRateLimit(loginPolicy, p.RateLimits, logg)
	registerLimit := middleware.AuthRateLimit(registerPolicy, p.RateLimits, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Ready))
	})
	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", controllers.AuthLogin(p.Auth, logg))
		r.With(registerLimit).Post("/register", controllers.AuthRegister(p.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(p.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.Auth, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", controllers.AdminAuthLogin(p.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(p.Catalog, p.Cart, cfg.Catalog.FeaturedCategories, logg))
			r.Get("/categories/{categoryId}/books", controllers.CatalogCategoryBooks(p.Catalog, logg))
			r.Get("/books", controllers.CatalogSearch(p.Catalog, logg))
			r.Get("/books/{bookId}", controllers.CatalogBook(p.Catalog, logg))
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Cart, logg))
			r.Post("/lines", controllers.CartAddLine(p.Cart, logg))
		})
		r.With(middleware.Idempotency(p.Idempotency, logg)).Post("/checkout", controllers.Checkout(p.Checkout, logg))
		r.Get("/orders", controllers.OrdersMine(p.Orders, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.RequireAdmin(p.Accounts, logg))
		admincontrollers.Routes(r, p.Admin, logg)
	})

	return r
}
