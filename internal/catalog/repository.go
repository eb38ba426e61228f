package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

const storageOrder = "created_at ASC, id ASC"

// Repository groups the category, supplier and book tables.
type Repository struct {
	repo.Base
	Categories *repo.CRUD[models.Category]
	Suppliers  *repo.CRUD[models.Supplier]
	Books      *repo.CRUD[models.Book]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Base:       repo.NewBase(db),
		Categories: repo.NewCRUD[models.Category](db, repo.WithOrder("name ASC, id ASC")),
		Suppliers:  repo.NewCRUD[models.Supplier](db, repo.WithOrder("name ASC, id ASC")),
		Books: repo.NewCRUD[models.Book](db,
			repo.WithPreload("Category", "Supplier"),
			repo.WithOrder("title ASC, id ASC"),
		),
	}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// BooksByCategory lists the books of one category in insertion order.
func (r *Repository) BooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Book, error) {
	var rows []models.Book
	err := r.Books.Query(ctx).
		Where("category_id = ?", categoryID).
		Order(storageOrder).
		Find(&rows).
		Error
	return rows, err
}

// CategoriesByName returns the categories whose name is exactly one of names.
func (r *Repository) CategoriesByName(ctx context.Context, names []string) ([]models.Category, error) {
	if len(names) == 0 {
		return []models.Category{}, nil
	}
	var rows []models.Category
	err := r.DB(ctx).
		Where("name IN ?", names).
		Order("name ASC, id ASC").
		Find(&rows).
		Error
	return rows, err
}

// SearchQuery narrows SearchBooks. Nil and empty values disable a filter.
type SearchQuery struct {
	Query      string
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// SearchBooks matches title or author case-insensitively plus the optional
// category and price bounds.
func (r *Repository) SearchBooks(ctx context.Context, filter SearchQuery) ([]models.Book, error) {
	q := r.Books.Query(ctx)
	if term := strings.TrimSpace(filter.Query); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(author) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	var rows []models.Book
	if err := q.Order("title ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecentBooks returns the limit most recently created books.
func (r *Repository) RecentBooks(ctx context.Context, limit int) ([]models.Book, error) {
	var rows []models.Book
	err := r.Books.Query(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func escapeLike(term string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(term)
}
