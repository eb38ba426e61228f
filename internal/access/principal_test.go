package access

import (
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

func TestTierClassification(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name      string
		principal Principal
		tier      Tier
		userErr   pkgerrors.Code
		adminErr  pkgerrors.Code
	}{
		{name: "anonymous", principal: Anonymous, tier: TierAnonymous, userErr: pkgerrors.CodeUnauthorized, adminErr: pkgerrors.CodeUnauthorized},
		{name: "user", principal: User(id), tier: TierUser, adminErr: pkgerrors.CodeForbidden},
		{name: "admin", principal: Admin(id), tier: TierAdmin},
		{name: "admin flag without id", principal: Principal{Admin: true, Authenticated: true}, tier: TierAnonymous, userErr: pkgerrors.CodeUnauthorized, adminErr: pkgerrors.CodeUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.principal.Tier(); got != tc.tier {
				t.Fatalf("expected tier %s, got %s", tc.tier, got)
			}
			assertCode(t, tc.principal.RequireUser(), tc.userErr)
			assertCode(t, tc.principal.RequireAdmin(), tc.adminErr)
		})
	}
}

func TestForbiddenMessageLeaksNothing(t *testing.T) {
	err := pkgerrors.As(User(uuid.New()).RequireAdmin())
	if err == nil || err.Message() != "access denied" {
		t.Fatalf("unexpected error %v", err)
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if code == "" {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}
	if !pkgerrors.IsCode(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}
