package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

const (
	maxAddressLen = 500
	maxNotesLen   = 500
)

// Service exposes order history for shoppers and order edits for admins.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CreateInput is an order written directly by the back-office.
type CreateInput struct {
	UserID          uuid.UUID
	ShippingAddress string
	PaymentMethod   string
	Notes           *string
	Total           decimal.Decimal
}

// UpdateInput carries the editable columns. The owner, the payment method and
// the creation time never change.
type UpdateInput struct {
	ShippingAddress string
	Notes           *string
	Total           decimal.Decimal
}

type userChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo  Repository
	users userChecker
}

func NewService(store Repository, users userChecker) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user checker required")
	}
	return &service{repo: store, users: users}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	return rows, repo.Classify(err, "order", "list")
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.repo.List(ctx)
	return rows, repo.Classify(err, "order", "list")
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "order", "load")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	fields := pkgerrors.Fields{}
	if input.UserID == uuid.Nil {
		fields.Add("user_id", "is required")
	}
	address := strings.TrimSpace(input.ShippingAddress)
	checkAddress(fields, address)
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(input.PaymentMethod))
	if err != nil {
		fields.Add("payment_method", "must be one of card, external_wallet, bank_transfer, cash_on_delivery")
	}
	notes := normalizeNotes(fields, input.Notes)
	checkTotal(fields, input.Total)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, input.UserID)
	if err != nil {
		return nil, repo.Classify(err, "user", "load")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	row := &models.Order{
		UserID:          input.UserID,
		ShippingAddress: address,
		PaymentMethod:   method,
		Notes:           notes,
		Total:           input.Total.Round(2),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.Classify(err, "order", "create")
	}
	return s.Get(ctx, row.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Order, error) {
	fields := pkgerrors.Fields{}
	address := strings.TrimSpace(input.ShippingAddress)
	checkAddress(fields, address)
	notes := normalizeNotes(fields, input.Notes)
	checkTotal(fields, input.Total)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "order", "load")
	}
	row.ShippingAddress = address
	row.Notes = notes
	row.Total = input.Total.Round(2)
	row.User = nil
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.Classify(err, "order", "update")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.Classify(s.repo.Delete(ctx, id), "order", "delete")
}

func (s *service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	return count, repo.Classify(err, "order", "count")
}

func checkAddress(fields pkgerrors.Fields, address string) {
	fields.Required("shipping_address", address)
	fields.MaxLen("shipping_address", address, maxAddressLen)
}

func checkTotal(fields pkgerrors.Fields, total decimal.Decimal) {
	if total.IsNegative() {
		fields.Add("total", "must be 0 or greater")
	}
}

func normalizeNotes(fields pkgerrors.Fields, notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	fields.MaxLen("notes", trimmed, maxNotesLen)
	return &trimmed
}
