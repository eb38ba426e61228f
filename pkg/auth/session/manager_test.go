package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/libreria-backend/pkg/config"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func newTestManager(t *testing.T, store *mockStore) *Manager {
	t.Helper()
	manager, err := NewManager(store, config.JWTConfig{ExpirationMinutes: 15, RefreshTokenTTLMinutes: 60})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func TestNewManagerValidatesTTL(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{RefreshTokenTTLMinutes: 60}); err == nil {
		t.Fatal("expected nil store error")
	}
	if _, err := NewManager(newMockStore(), config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 30}); err == nil {
		t.Fatal("expected refresh ttl shorter than access ttl to fail")
	}
}

func TestManagerGenerateAndRotate(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(t, store)

	ctx := context.Background()
	userID := uuid.New()
	accessID := "access-123"
	token, err := manager.Generate(ctx, accessID, userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stored := store.data[store.AccessSessionKey(accessID)]; !strings.HasSuffix(stored, "."+token) {
		t.Fatalf("expected stored session to end with token, got %q", stored)
	}

	if _, err := manager.Rotate(ctx, accessID, "wrong"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token error, got %v", err)
	}

	rotation, err := manager.Rotate(ctx, accessID, token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if rotation.UserID != userID {
		t.Fatalf("expected owner %s, got %s", userID, rotation.UserID)
	}
	if _, exists := store.data[store.AccessSessionKey(accessID)]; exists {
		t.Fatalf("old access key left behind")
	}
	if ok, _ := manager.HasSession(ctx, rotation.AccessID); !ok {
		t.Fatalf("expected new session to exist")
	}

	if _, err := manager.Rotate(ctx, accessID, token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected reused refresh token to fail, got %v", err)
	}
}

func TestManagerRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(t, store)
	ctx := context.Background()

	if _, err := manager.Generate(ctx, "access-1", uuid.New()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := manager.Revoke(ctx, "access-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err := manager.HasSession(ctx, "access-1")
	if err != nil || ok {
		t.Fatalf("expected session gone, ok=%v err=%v", ok, err)
	}
	if err := manager.Revoke(ctx, " "); err == nil {
		t.Fatal("expected blank access id to fail")
	}
}

func TestRotateRejectsCorruptSession(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(t, store)
	store.data[store.AccessSessionKey("legacy")] = "token-without-owner"

	if _, err := manager.Rotate(context.Background(), "legacy", "token-without-owner"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token, got %v", err)
	}
}
