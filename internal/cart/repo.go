package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

const lineOrder = "cart_lines.created_at ASC, cart_lines.id ASC"

// Repository persists cart lines.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) LineRepository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// FindLine returns gorm.ErrRecordNotFound when the user has no line for the book.
func (r *Repository) FindLine(ctx context.Context, userID, bookID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.DB(ctx).
		Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&line).
		Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *Repository) CreateLine(ctx context.Context, line *models.CartLine) error {
	return r.DB(ctx).Omit(clause.Associations).Create(line).Error
}

// IncrementLine bumps the quantity in place so concurrent adds never lose an
// update.
func (r *Repository) IncrementLine(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).
		Model(&models.CartLine{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListLines returns the user's lines in insertion order with books loaded.
func (r *Repository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.DB(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order(lineOrder).
		Find(&lines).
		Error
	return lines, err
}

// LockLines reads the user's lines FOR UPDATE. Dialects without row locks
// (sqlite) ignore the clause and rely on their single writer.
func (r *Repository) LockLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.ForUpdate(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order(lineOrder).
		Find(&lines).
		Error
	return lines, err
}

func (r *Repository) CountLines(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.CartLine{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteByUser empties the user's cart and reports how many lines went.
func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.DB(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{})
	return res.RowsAffected, res.Error
}
