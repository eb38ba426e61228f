package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

// addAttempts bounds the insert race: the second attempt always finds the
// line the concurrent request created.
const addAttempts = 2

// Service exposes cart operations for one explicit user.
type Service interface {
	AddLine(ctx context.Context, userID, bookID uuid.UUID) (*models.CartLine, error)
	ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	Summary(ctx context.Context, userID uuid.UUID) (*Summary, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// Summary is the priced cart.
type Summary struct {
	Lines []models.CartLine
	Totals
	Count int
}

type service struct {
	repo  LineRepository
	tx    txRunner
	books bookChecker
}

// NewService builds a cart service backed by the provided stack.
func NewService(lines LineRepository, tx txRunner, books bookChecker) (Service, error) {
	if lines == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if books == nil {
		return nil, fmt.Errorf("book checker required")
	}
	return &service{repo: lines, tx: tx, books: books}, nil
}

// AddLine puts one more copy of the book in the user's cart.
func (s *service) AddLine(ctx context.Context, userID, bookID uuid.UUID) (*models.CartLine, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if bookID == uuid.Nil {
		return nil, pkgerrors.Validation(map[string]string{"book_id": "is required"})
	}

	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, repo.Classify(err, "book", "load")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	}

	for attempt := 1; ; attempt++ {
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return addOrIncrement(ctx, s.repo.WithTx(tx), userID, bookID)
		})
		if err == nil || attempt >= addAttempts || !db.IsUniqueViolation(err, "") {
			break
		}
	}
	if err != nil {
		return nil, repo.Classify(err, "cart line", "add")
	}

	line, err := s.repo.FindLine(ctx, userID, bookID)
	if err != nil {
		return nil, repo.Classify(err, "cart line", "load")
	}
	return line, nil
}

func addOrIncrement(ctx context.Context, lines LineRepository, userID, bookID uuid.UUID) error {
	existing, err := lines.FindLine(ctx, userID, bookID)
	switch {
	case err == nil:
		return lines.IncrementLine(ctx, existing.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return lines.CreateLine(ctx, &models.CartLine{UserID: userID, BookID: bookID, Quantity: 1})
	default:
		return err
	}
}

func (s *service) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, repo.Classify(err, "cart line", "list")
	}
	return lines, nil
}

func (s *service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	lines, err := s.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Summary{Lines: lines, Totals: ComputeTotals(lines), Count: len(lines)}, nil
}

func (s *service) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	count, err := s.repo.CountLines(ctx, userID)
	if err != nil {
		return 0, repo.Classify(err, "cart line", "count")
	}
	return count, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if _, err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return repo.Classify(err, "cart line", "clear")
	}
	return nil
}
