package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/internal/users"
	pkgAuth "github.com/angelmondragon/libreria-backend/pkg/auth"
	"github.com/angelmondragon/libreria-backend/pkg/auth/session"
	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db/dbtest"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
	"github.com/angelmondragon/libreria-backend/pkg/security"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryStore) AccessSessionKey(accessID string) string {
	return "session:" + accessID
}

var testJWT = config.JWTConfig{
	Secret:                 "secret",
	Issuer:                 "libreria",
	ExpirationMinutes:      15,
	RefreshTokenTTLMinutes: 60,
}

type harness struct {
	svc   Service
	repo  *users.Repository
	store *memoryStore
}

func newHarness(t *testing.T) harness {
	t.Helper()
	client := dbtest.Open(t)
	repo := users.NewRepository(client.DB())
	accounts, err := users.NewService(repo, orders.NewRepository(client.DB()), security.NewHasher(config.PasswordConfig{}))
	require.NoError(t, err)

	store := &memoryStore{data: map[string]string{}}
	manager, err := session.NewManager(store, testJWT)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		Accounts:       accounts,
		SessionManager: manager,
		JWTConfig:      testJWT,
	})
	require.NoError(t, err)
	return harness{svc: svc, repo: repo, store: store}
}

func (h harness) seed(t *testing.T, username, password string, admin, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsAdmin:      admin,
		IsActive:     active,
	}
	require.NoError(t, h.repo.Create(context.Background(), user))
	return user
}

func TestRegisterLogsIn(t *testing.T) {
	h := newHarness(t)

	resp, err := h.svc.Register(context.Background(), RegisterRequest{
		Username:        "nueva",
		Email:           "nueva@example.com",
		Password:        "contraseña1",
		PasswordConfirm: "contraseña1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, enums.RoleCustomer, resp.User.Role)

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
	require.Len(t, h.store.data, 1)
}

func TestRegisterRejectsMismatchAndDuplicates(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "ocupado", "12345678", false, true)

	_, err := h.svc.Register(context.Background(), RegisterRequest{
		Username: "otro", Email: "otro@example.com", Password: "12345678", PasswordConfirm: "87654321",
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
	require.Contains(t, pkgerrors.As(err).Details().(map[string]string), "password_confirm")

	_, err = h.svc.Register(context.Background(), RegisterRequest{
		Username: "ocupado", Email: "libre@example.com", Password: "12345678", PasswordConfirm: "12345678",
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	h := newHarness(t)
	user := h.seed(t, "lector", "secreto123", false, true)

	for _, identifier := range []string{"lector", "lector@example.com", "LECTOR@example.com"} {
		resp, err := h.svc.Login(context.Background(), LoginRequest{Identifier: identifier, Password: "secreto123"})
		require.NoError(t, err, identifier)
		require.Equal(t, user.ID, resp.User.ID)
		require.NotNil(t, resp.User.LastLoginAt)
	}
}

func TestLoginFailuresLookAlike(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "lector", "secreto123", false, true)
	h.seed(t, "inactivo", "secreto123", false, false)

	cases := []LoginRequest{
		{Identifier: "lector", Password: "equivocada"},
		{Identifier: "nadie", Password: "secreto123"},
		{Identifier: "inactivo", Password: "secreto123"},
		{Identifier: "", Password: ""},
	}
	for _, req := range cases {
		_, err := h.svc.Login(context.Background(), req)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "%+v", req)
		require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		require.Equal(t, invalidCredentialsMessage, typed.Message())
	}
}

func TestAdminLoginRequiresFlag(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "cliente", "secreto123", false, true)
	h.seed(t, "jefa", "secreto123", true, true)

	_, err := h.svc.AdminLogin(context.Background(), LoginRequest{Identifier: "cliente", Password: "secreto123"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	resp, err := h.svc.AdminLogin(context.Background(), LoginRequest{Identifier: "jefa", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, enums.RoleAdmin, claims.Role)
}

func TestRefreshRotatesAndReflectsCurrentFlag(t *testing.T) {
	h := newHarness(t)
	user := h.seed(t, "jefa", "secreto123", true, true)
	ctx := context.Background()

	login, err := h.svc.Login(ctx, LoginRequest{Identifier: "jefa", Password: "secreto123"})
	require.NoError(t, err)
	require.NoError(t, h.repo.DB(ctx).Model(&models.User{}).Where("id = ?", user.ID).Update("is_admin", false).Error)

	pair, err := h.svc.Refresh(ctx, RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, pair.RefreshToken)
	claims, err := pkgAuth.ParseAccessToken(testJWT, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, enums.RoleCustomer, claims.Role)

	_, err = h.svc.Refresh(ctx, RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized), "old refresh token must be spent")
}

func TestLogoutRevokesSession(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "lector", "secreto123", false, true)
	ctx := context.Background()

	login, err := h.svc.Login(ctx, LoginRequest{Identifier: "lector", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := pkgAuth.ParseAccessToken(testJWT, login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, h.svc.Logout(ctx, claims.ID))
	require.Empty(t, h.store.data)
	_, err = h.svc.Refresh(ctx, RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}
