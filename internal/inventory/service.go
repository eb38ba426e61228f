package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

// CreateInput registers the stock row of a book. Quantity is required;
// ReorderThreshold defaults to models.DefaultReorderThreshold.
type CreateInput struct {
	BookID           uuid.UUID
	Quantity         *int
	ReorderThreshold *int
}

// UpdateInput changes the counters of an existing row. The book link cannot
// change.
type UpdateInput struct {
	Quantity         int
	ReorderThreshold int
}

// Service manages per-book stock rows.
type Service interface {
	List(ctx context.Context) ([]models.Inventory, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	GetByBook(ctx context.Context, bookID uuid.UUID) (*models.Inventory, error)
	Create(ctx context.Context, input CreateInput) (*models.Inventory, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Inventory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LowStock(ctx context.Context) ([]models.Inventory, error)
}

type bookChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo  *Repository
	books bookChecker
}

// NewService builds the inventory service. books verifies the referenced book
// exists on create.
func NewService(store *Repository, books bookChecker) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if books == nil {
		return nil, fmt.Errorf("book checker required")
	}
	return &service{repo: store, books: books}, nil
}

func (s *service) List(ctx context.Context) ([]models.Inventory, error) {
	rows, err := s.repo.List(ctx)
	return rows, repo.Classify(err, "inventory", "list")
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "inventory", "load")
	}
	return row, nil
}

func (s *service) GetByBook(ctx context.Context, bookID uuid.UUID) (*models.Inventory, error) {
	row, err := s.repo.FindByBook(ctx, bookID)
	if err != nil {
		return nil, repo.Classify(err, "inventory", "load")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Inventory, error) {
	fields := pkgerrors.Fields{}
	if input.BookID == uuid.Nil {
		fields.Add("book_id", "is required")
	}
	if input.Quantity == nil {
		fields.Add("quantity", "is required")
	} else {
		checkCounter(fields, "quantity", *input.Quantity)
	}
	threshold := models.DefaultReorderThreshold
	if input.ReorderThreshold != nil {
		threshold = *input.ReorderThreshold
		checkCounter(fields, "reorder_threshold", threshold)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	exists, err := s.books.Exists(ctx, input.BookID)
	if err != nil {
		return nil, repo.Classify(err, "book", "load")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	}

	row := &models.Inventory{
		BookID:           input.BookID,
		Quantity:         *input.Quantity,
		ReorderThreshold: threshold,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.Classify(err, "inventory", "create")
	}
	return s.Get(ctx, row.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Inventory, error) {
	fields := pkgerrors.Fields{}
	checkCounter(fields, "quantity", input.Quantity)
	checkCounter(fields, "reorder_threshold", input.ReorderThreshold)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "inventory", "load")
	}
	row.Quantity = input.Quantity
	row.ReorderThreshold = input.ReorderThreshold
	row.Book = nil
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.Classify(err, "inventory", "update")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.Classify(s.repo.Delete(ctx, id), "inventory", "delete")
}

func (s *service) LowStock(ctx context.Context) ([]models.Inventory, error) {
	rows, err := s.repo.LowStock(ctx)
	return rows, repo.Classify(err, "inventory", "list")
}

func checkCounter(fields pkgerrors.Fields, field string, value int) {
	if value < 0 {
		fields.Add(field, "must be 0 or greater")
	}
}
