package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

// Classify converts a data-access error into a typed error: missing rows map
// to NOT_FOUND, unique violations to CONFLICT and everything else to INTERNAL.
// Typed errors pass through untouched.
func Classify(err error, entity, action string) error {
	switch {
	case err == nil:
		return nil
	case pkgerrors.As(err) != nil:
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" already exists")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action+" "+entity)
	}
}
