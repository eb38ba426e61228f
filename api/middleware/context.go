package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/internal/access"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxRole     contextKey = "actor_role"
	ctxAccessID contextKey = "access_id"
	ctxAdmin    contextKey = "admin_verified"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// RoleFromContext returns the role claimed by the token. It is informational;
// admin routes trust only the flag re-read by RequireAdmin.
func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti of the access token, which keys the
// Redis session.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// PrincipalFromContext classifies the requester. The admin tier is only
// granted after RequireAdmin verified the stored flag for this request.
func PrincipalFromContext(ctx context.Context) access.Principal {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return access.Anonymous
	}
	if verified, _ := ctx.Value(ctxAdmin).(bool); verified {
		return access.Admin(id)
	}
	return access.User(id)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

func withAdminVerified(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAdmin, true)
}
