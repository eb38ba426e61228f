package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/api/responses"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

type accountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequireAdmin re-loads the authenticated account on every request and lets
// it through only while it is active and flagged admin. The role claim in the
// token is never trusted here.
func RequireAdmin(accounts accountLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal := PrincipalFromContext(ctx)
			if err := principal.RequireUser(); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			user, err := accounts.FindByID(ctx, principal.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "access denied"))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account"))
				return
			}
			if !user.IsActive || !user.IsAdmin {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "access denied"))
				return
			}

			ctx = withAdminVerified(ctx)
			if logg != nil {
				ctx = logg.WithTier(ctx, "admin")
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
