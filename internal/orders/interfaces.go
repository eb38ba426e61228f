package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// Repository defines the order persistence surface shared by checkout and the
// back-office.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	Find(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.Order, error)
}
