package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

// Service exposes catalog reads for shoppers and catalog writes for the
// back-office.
type Service interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, input SupplierInput) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	CreateBook(ctx context.Context, input BookInput) (*models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input BookInput) (*models.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	BooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Book, error)
	FeaturedCategories(ctx context.Context, names []string) ([]models.Category, error)
	Search(ctx context.Context, query SearchQuery) ([]models.Book, error)
	RecentBooks(ctx context.Context, limit int) ([]models.Book, error)
	CountBooks(ctx context.Context) (int64, error)
	CountSuppliers(ctx context.Context) (int64, error)
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service over store.
func NewService(store *Repository) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: store}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.Categories.List(ctx)
	return rows, repo.Classify(err, "category", "list")
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := s.repo.Categories.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "category", "load")
	}
	return row, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	row := &models.Category{}
	applyCategory(row, input)
	if err := s.repo.Categories.Create(ctx, row); err != nil {
		return nil, repo.Classify(err, "category", "create")
	}
	return row, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.Categories.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "category", "load")
	}
	applyCategory(row, input)
	if err := s.repo.Categories.Save(ctx, row); err != nil {
		return nil, repo.Classify(err, "category", "update")
	}
	return row, nil
}

// DeleteCategory removes the category; its books go with it through the
// foreign key.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return repo.Classify(s.repo.Categories.Delete(ctx, id), "category", "delete")
}

func (s *service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.repo.Suppliers.List(ctx)
	return rows, repo.Classify(err, "supplier", "list")
}

func (s *service) GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	row, err := s.repo.Suppliers.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "supplier", "load")
	}
	return row, nil
}

func (s *service) CreateSupplier(ctx context.Context, input SupplierInput) (*models.Supplier, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	row := &models.Supplier{}
	applySupplier(row, input)
	if err := s.repo.Suppliers.Create(ctx, row); err != nil {
		return nil, repo.Classify(err, "supplier", "create")
	}
	return row, nil
}

func (s *service) UpdateSupplier(ctx context.Context, id uuid.UUID, input SupplierInput) (*models.Supplier, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.Suppliers.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "supplier", "load")
	}
	applySupplier(row, input)
	if err := s.repo.Suppliers.Save(ctx, row); err != nil {
		return nil, repo.Classify(err, "supplier", "update")
	}
	return row, nil
}

// DeleteSupplier removes the supplier. Its books stay with a NULL supplier.
func (s *service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return repo.Classify(s.repo.Suppliers.Delete(ctx, id), "supplier", "delete")
}

func (s *service) ListBooks(ctx context.Context) ([]models.Book, error) {
	rows, err := s.repo.Books.List(ctx)
	return rows, repo.Classify(err, "book", "list")
}

func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	row, err := s.repo.Books.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "book", "load")
	}
	return row, nil
}

func (s *service) CreateBook(ctx context.Context, input BookInput) (*models.Book, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureBookRefs(ctx, input); err != nil {
		return nil, err
	}

	row := &models.Book{}
	applyBook(row, input)
	if err := s.repo.Books.Create(ctx, row); err != nil {
		return nil, repo.Classify(err, "book", "create")
	}
	return s.GetBook(ctx, row.ID)
}

// UpdateBook replaces the writable state of a book. Rejected input leaves the
// stored row untouched.
func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, input BookInput) (*models.Book, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.Books.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "book", "load")
	}
	if err := s.ensureBookRefs(ctx, input); err != nil {
		return nil, err
	}

	applyBook(row, input)
	row.Category, row.Supplier = nil, nil
	if err := s.repo.Books.Save(ctx, row); err != nil {
		return nil, repo.Classify(err, "book", "update")
	}
	return s.GetBook(ctx, row.ID)
}

func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return repo.Classify(s.repo.Books.Delete(ctx, id), "book", "delete")
}

// BooksByCategory lists a category's books; NOT_FOUND when the category is
// unknown.
func (s *service) BooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Book, error) {
	exists, err := s.repo.Categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, repo.Classify(err, "category", "load")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	rows, err := s.repo.BooksByCategory(ctx, categoryID)
	return rows, repo.Classify(err, "book", "list")
}

func (s *service) FeaturedCategories(ctx context.Context, names []string) ([]models.Category, error) {
	rows, err := s.repo.CategoriesByName(ctx, names)
	return rows, repo.Classify(err, "category", "list")
}

func (s *service) Search(ctx context.Context, query SearchQuery) ([]models.Book, error) {
	if err := query.validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.SearchBooks(ctx, query)
	return rows, repo.Classify(err, "book", "search")
}

func (s *service) RecentBooks(ctx context.Context, limit int) ([]models.Book, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.repo.RecentBooks(ctx, limit)
	return rows, repo.Classify(err, "book", "list")
}

func (s *service) CountBooks(ctx context.Context) (int64, error) {
	count, err := s.repo.Books.Count(ctx)
	return count, repo.Classify(err, "book", "count")
}

func (s *service) CountSuppliers(ctx context.Context) (int64, error) {
	count, err := s.repo.Suppliers.Count(ctx)
	return count, repo.Classify(err, "supplier", "count")
}

func (s *service) ensureBookRefs(ctx context.Context, input BookInput) error {
	exists, err := s.repo.Categories.Exists(ctx, input.CategoryID)
	if err != nil {
		return repo.Classify(err, "category", "load")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	if input.SupplierID == nil {
		return nil
	}
	exists, err = s.repo.Suppliers.Exists(ctx, *input.SupplierID)
	if err != nil {
		return repo.Classify(err, "supplier", "load")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return nil
}

func applyCategory(row *models.Category, input CategoryInput) {
	row.Name = input.Name
	row.Description = input.Description
	row.Color = input.Color
	if row.Color == "" {
		row.Color = models.DefaultCategoryColor
	}
}

func applySupplier(row *models.Supplier, input SupplierInput) {
	row.Name = input.Name
	row.Contact = input.Contact
	row.Phone = input.Phone
	row.Email = input.Email
	row.Address = input.Address
}

func applyBook(row *models.Book, input BookInput) {
	row.Title = input.Title
	row.Author = input.Author
	row.Publisher = input.Publisher
	row.Description = input.Description
	row.Price = input.Price
	row.ISBN = input.ISBN
	row.CategoryID = input.CategoryID
	row.SupplierID = input.SupplierID
	if input.Pages != nil {
		row.Pages = *input.Pages
	}
	if input.PublishedOn != nil {
		row.PublishedOn = *input.PublishedOn
	}
	if input.ImageURL != "" {
		row.ImageURL = input.ImageURL
	} else if row.ImageURL == "" {
		row.ImageURL = models.DefaultBookImageURL
	}
}
