package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

const newestFirst = "created_at DESC, id DESC"

type repository struct {
	*repo.CRUD[models.Order]
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{CRUD: repo.NewCRUD[models.Order](db, repo.WithPreload("User"), repo.WithOrder(newestFirst))}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{CRUD: r.CRUD.WithTx(tx)}
}

// ListByUser returns the user's orders, newest first.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order(newestFirst).
		Find(&rows).
		Error
	return rows, err
}

// ListByUsers returns the orders of every listed user, newest first.
func (r *repository) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.Order, error) {
	if len(userIDs) == 0 {
		return []models.Order{}, nil
	}
	var rows []models.Order
	err := r.DB(ctx).
		Where("user_id IN ?", userIDs).
		Order(newestFirst).
		Find(&rows).
		Error
	return rows, err
}
