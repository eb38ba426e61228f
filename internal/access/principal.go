// Package access classifies requesters and gates operations by tier.
package access

import (
	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

// Tier is the coarse access level of a requester.
type Tier string

const (
	TierAnonymous Tier = "anonymous"
	TierUser      Tier = "user"
	TierAdmin     Tier = "admin"
)

// Principal is the requester as seen by guarded operations. It is passed
// explicitly; nothing reads an ambient current user.
type Principal struct {
	UserID        uuid.UUID
	Authenticated bool
	Admin         bool
}

// Anonymous is the principal of an unauthenticated request.
var Anonymous = Principal{}

// User builds the principal of an authenticated, non-elevated account.
func User(id uuid.UUID) Principal {
	return Principal{UserID: id, Authenticated: id != uuid.Nil}
}

// Admin builds the principal of an account whose stored admin flag was
// verified for this request.
func Admin(id uuid.UUID) Principal {
	return Principal{UserID: id, Authenticated: id != uuid.Nil, Admin: id != uuid.Nil}
}

func (p Principal) Tier() Tier {
	switch {
	case !p.Authenticated || p.UserID == uuid.Nil:
		return TierAnonymous
	case p.Admin:
		return TierAdmin
	default:
		return TierUser
	}
}

// RequireUser fails with UNAUTHORIZED for anonymous principals.
func (p Principal) RequireUser() error {
	if p.Tier() == TierAnonymous {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return nil
}

// RequireAdmin fails with UNAUTHORIZED for anonymous principals and with
// FORBIDDEN for everyone below the admin tier.
func (p Principal) RequireAdmin() error {
	if err := p.RequireUser(); err != nil {
		return err
	}
	if p.Tier() != TierAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	return nil
}
