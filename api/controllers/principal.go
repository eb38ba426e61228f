package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/api/middleware"
)

// requireUserID returns the authenticated user id, or UNAUTHORIZED.
func requireUserID(r *http.Request) (uuid.UUID, error) {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := principal.RequireUser(); err != nil {
		return uuid.Nil, err
	}
	return principal.UserID, nil
}
