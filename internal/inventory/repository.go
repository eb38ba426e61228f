package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// Repository persists inventory rows.
type Repository struct {
	*repo.CRUD[models.Inventory]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		CRUD: repo.NewCRUD[models.Inventory](db,
			repo.WithPreload("Book"),
			repo.WithOrder("updated_at DESC, id ASC"),
		),
	}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{CRUD: r.CRUD.WithTx(tx)}
}

// FindByBook returns gorm.ErrRecordNotFound when the book has no stock row.
func (r *Repository) FindByBook(ctx context.Context, bookID uuid.UUID) (*models.Inventory, error) {
	var row models.Inventory
	if err := r.Query(ctx).Where("book_id = ?", bookID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// LowStock lists rows at or below their reorder threshold, emptiest first.
func (r *Repository) LowStock(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := r.Query(ctx).
		Where("quantity <= reorder_threshold").
		Order("quantity ASC, id ASC").
		Find(&rows).
		Error
	return rows, err
}
