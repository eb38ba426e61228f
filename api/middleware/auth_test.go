package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/access"
	"github.com/angelmondragon/libreria-backend/pkg/auth"
	"github.com/angelmondragon/libreria-backend/pkg/auth/session"
	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/enums"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "libreria", ExpirationMinutes: 60}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.RoleCustomer)
	handler := Auth(testJWT, stubSessionVerifier{ok: false}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSessionStoreFailureIsDependencyError(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.RoleCustomer)
	handler := Auth(testJWT, stubSessionVerifier{err: errors.New("redis down")}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestAuthSeedsUserPrincipal(t *testing.T) {
	userID := uuid.New()
	token := mintTestToken(t, userID, enums.RoleAdmin)

	var principal access.Principal
	var role, accessID string
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromContext(r.Context())
		role = RoleFromContext(r.Context())
		accessID = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if principal.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, principal.UserID)
	}
	if principal.Tier() != access.TierUser {
		t.Fatalf("admin claim alone must not elevate, got tier %s", principal.Tier())
	}
	if role != string(enums.RoleAdmin) {
		t.Fatalf("expected role claim admin got %s", role)
	}
	if accessID == "" {
		t.Fatal("expected access id in context")
	}
}

func TestRequireAdmin(t *testing.T) {
	adminID, customerID, inactiveID := uuid.New(), uuid.New(), uuid.New()
	accounts := stubAccounts{
		adminID:    {ID: adminID, IsAdmin: true, IsActive: true},
		customerID: {ID: customerID, IsActive: true},
		inactiveID: {ID: inactiveID, IsAdmin: true},
	}

	cases := []struct {
		name   string
		userID string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"customer", customerID.String(), http.StatusForbidden},
		{"inactive admin", inactiveID.String(), http.StatusForbidden},
		{"unknown account", uuid.NewString(), http.StatusForbidden},
		{"admin", adminID.String(), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tier access.Tier
			handler := RequireAdmin(accounts, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tier = PrincipalFromContext(r.Context()).Tier()
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.userID != "" {
				req = req.WithContext(WithUserID(req.Context(), tc.userID))
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.Code)
			}
			if tc.want == http.StatusOK && tier != access.TierAdmin {
				t.Fatalf("expected admin tier got %s", tier)
			}
		})
	}
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.Role) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}

type stubAccounts map[uuid.UUID]*models.User

func (s stubAccounts) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
