package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	admincontrollers "github.com/angelmondragon/libreria-backend/api/controllers/admin"
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
	"github.com/angelmondragon/libreria-backend/pkg/db/dbtest"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
	"github.com/angelmondragon/libreria-backend/pkg/metrics"
	"github.com/angelmondragon/libreria-backend/pkg/security"
)

// fakeRedis backs sessions, idempotency records and rate limit counters.
type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	counts map[string]int64
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, counts: map[string]int64{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = fmt.Sprint(value)
	return true, nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRedis) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRedis) AccessSessionKey(accessID string) string { return "session:" + accessID }

func (f *fakeRedis) IdempotencyKey(scope, id string) string { return "idempotency:" + scope + ":" + id }

type stack struct {
	handler  http.Handler
	conn     *gorm.DB
	users    *users.Repository
	registry *prometheus.Registry
}

func newStack(t *testing.T) stack {
	t.Helper()
	client := dbtest.Open(t)
	conn := client.DB()
	redis := newFakeRedis()

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", CORSOrigins: []string{"http://localhost:3000"}},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "libreria", ExpirationMinutes: 15, RefreshTokenTTLMinutes: 60},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow: time.Minute, LoginIPLimit: 100, LoginIdentifierLimit: 100,
			RegisterWindow: time.Minute, RegisterIPLimit: 100, RegisterIdentifierLimit: 100,
		},
		Catalog: config.CatalogConfig{FeaturedCategories: []string{"Poesía", "Novela"}},
	}

	registry := prometheus.NewRegistry()
	usersRepo := users.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	books := repo.NewCRUD[models.Book](conn)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	require.NoError(t, err)
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn), books)
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(ordersRepo, repo.NewCRUD[models.User](conn))
	require.NoError(t, err)
	usersSvc, err := users.NewService(usersRepo, ordersRepo, security.NewHasher(config.PasswordConfig{}))
	require.NoError(t, err)
	cartRepo := cart.NewRepository(conn)
	cartSvc, err := cart.NewService(cartRepo, client, books)
	require.NoError(t, err)
	checkoutSvc, err := checkout.NewService(client, cartRepo, ordersRepo, metrics.NewCheckoutMetrics(registry))
	require.NoError(t, err)

	sessions, err := session.NewManager(redis, cfg.JWT)
	require.NoError(t, err)
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		Accounts:       usersSvc,
		SessionManager: sessions,
		JWTConfig:      cfg.JWT,
	})
	require.NoError(t, err)
	dashboard, err := admin.NewDashboard(catalogSvc, inventorySvc, ordersSvc, usersSvc)
	require.NoError(t, err)

	handler := NewRouter(RouterParams{
		Config:      cfg,
		Logger:      logger.New(logger.Options{ServiceName: "libreria-test", Output: io.Discard}),
		Gatherer:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Sessions:    sessions,
		RateLimits:  redis,
		Idempotency: redis,
		Accounts:    usersRepo,
		Auth:        authSvc,
		Catalog:     catalogSvc,
		Cart:        cartSvc,
		Checkout:    checkoutSvc,
		Orders:      ordersSvc,
		Admin: admincontrollers.Resources{
			Categories: admin.Categories(catalogSvc),
			Suppliers:  admin.Suppliers(catalogSvc),
			Books:      admin.Books(catalogSvc),
			Inventory:  admin.Inventory(inventorySvc),
			Orders:     admin.Orders(ordersSvc),
			Users:      admin.Users(usersSvc, ordersSvc),
			Dashboard:  dashboard,
			LowStock:   inventorySvc,
		},
	})
	return stack{handler: handler, conn: conn, users: usersRepo, registry: registry}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (s stack) do(t *testing.T, method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s stack) register(t *testing.T, username string) string {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "contraseña1",
		"password_confirm": "contraseña1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp.AccessToken
}

func (s stack) promote(t *testing.T, username string, admin bool) {
	t.Helper()
	require.NoError(t, s.conn.Model(&models.User{}).Where("username = ?", username).Update("is_admin", admin).Error)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newStack(t)

	rec, _ := s.do(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	s.handler.ServeHTTP(metricsRec, req)
	require.Equal(t, http.StatusOK, metricsRec.Code)
	require.Contains(t, metricsRec.Body.String(), "libreria_http_request_duration_seconds")
}

func TestShopperFlowThroughCheckout(t *testing.T) {
	s := newStack(t)
	token := s.register(t, "lectora")

	category := dbtest.Category(t, s.conn, "Poesía")
	dbtest.Category(t, s.conn, "Ciencia")
	book := dbtest.Book(t, s.conn, category.ID, "Veinte poemas", "280.00")

	rec, env := s.do(t, http.MethodGet, "/api/v1/catalog/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var storefront struct {
		Categories []catalog.CategoryDTO `json:"categories"`
		CartCount  int64                 `json:"cart_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &storefront))
	require.Len(t, storefront.Categories, 1)
	require.Zero(t, storefront.CartCount)

	rec, env = s.do(t, http.MethodGet, "/api/v1/catalog/books?query=poemas&max_price=300", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []catalog.BookDTO
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/cart/lines", token, map[string]string{"book_id": book.ID.String()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	checkoutBody := map[string]string{
		"shipping_address": "Av. Juárez 10, CDMX",
		"payment_method":   "card",
		"card_number":      "4111111111111111",
		"card_expiry":      "12/30",
	}
	rec, env = s.do(t, http.MethodPost, "/api/v1/checkout", token, checkoutBody, "Idempotency-Key", "k1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, env.Error.Details, "card_cvv")

	checkoutBody["card_cvv"] = "123"
	rec, env = s.do(t, http.MethodPost, "/api/v1/checkout", token, checkoutBody, "Idempotency-Key", "k2")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, "280.00", result.Subtotal)
	require.Equal(t, "44.80", result.Tax)
	require.Equal(t, "324.80", result.Total)

	replay, _ := s.do(t, http.MethodPost, "/api/v1/checkout", token, checkoutBody, "Idempotency-Key", "k2")
	require.Equal(t, http.StatusCreated, replay.Code)
	require.Equal(t, rec.Body.String(), replay.Body.String())

	rec, env = s.do(t, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []orders.OrderDTO
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	require.Equal(t, "324.80", mine[0].Total)

	rec, env = s.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary cart.SummaryDTO
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	require.Empty(t, summary.Lines)
}

func TestCheckoutRequiresIdempotencyKey(t *testing.T) {
	s := newStack(t)
	token := s.register(t, "lectora")

	rec, env := s.do(t, http.MethodPost, "/api/v1/checkout", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, string(pkgerrors.CodeValidation), env.Error.Code)
}

func TestAnonymousRequestsAreRejected(t *testing.T) {
	s := newStack(t)
	for _, path := range []string{"/api/v1/cart", "/api/v1/catalog/categories", "/api/admin/v1/dashboard"} {
		rec, _ := s.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminRoutesRecheckStoredFlag(t *testing.T) {
	s := newStack(t)
	customer := s.register(t, "cliente")
	s.register(t, "jefa")
	s.promote(t, "jefa", true)

	rec, env := s.do(t, http.MethodPost, "/api/admin/v1/auth/login", "", map[string]string{"identifier": "cliente", "password": "contraseña1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid credentials", env.Error.Message)

	for _, path := range []string{"/api/admin/v1/dashboard", "/api/admin/v1/books", "/api/admin/v1/users", "/api/admin/v1/inventory/low-stock"} {
		rec, _ := s.do(t, http.MethodGet, path, customer, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	rec, env = s.do(t, http.MethodPost, "/api/admin/v1/auth/login", "", map[string]string{"identifier": "jefa@example.com", "password": "contraseña1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))

	rec, _ = s.do(t, http.MethodPost, "/api/admin/v1/categories", login.AccessToken, map[string]string{"name": "Historia"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = s.do(t, http.MethodPost, "/api/admin/v1/books", login.AccessToken, map[string]any{"title": "Sin precio"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, env.Error.Details, "price")

	rec, env = s.do(t, http.MethodDelete, "/api/admin/v1/users/"+login.User.ID.String(), login.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "cannot delete your own account", env.Error.Message)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/v1/dashboard", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s.promote(t, "jefa", false)
	rec, _ = s.do(t, http.MethodGet, "/api/admin/v1/dashboard", login.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code, "a cleared flag must lock out an already minted token")
}

func TestLogoutEndsSession(t *testing.T) {
	s := newStack(t)
	token := s.register(t, "lectora")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
