package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// LineRepository defines the persistence surface required by the cart and
// checkout services.
type LineRepository interface {
	WithTx(tx *gorm.DB) LineRepository
	FindLine(ctx context.Context, userID, bookID uuid.UUID) (*models.CartLine, error)
	CreateLine(ctx context.Context, line *models.CartLine) error
	IncrementLine(ctx context.Context, id uuid.UUID) error
	ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	LockLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	CountLines(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type bookChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
