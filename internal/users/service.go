package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

// Service manages accounts on behalf of registration and the back-office.
type Service interface {
	List(ctx context.Context) ([]WithOrders, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, input CreateInput) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.User, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// WithOrders is a user plus their orders, newest first.
type WithOrders struct {
	User   models.User
	Orders []models.Order
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

type orderLister interface {
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.Order, error)
}

type service struct {
	repo   *Repository
	orders orderLister
	hasher passwordHasher
}

func NewService(store *Repository, orders orderLister, hasher passwordHasher) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order lister required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher required")
	}
	return &service{repo: store, orders: orders, hasher: hasher}, nil
}

func (s *service) List(ctx context.Context) ([]WithOrders, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, repo.Classify(err, "user", "list")
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	orders, err := s.orders.ListByUsers(ctx, ids)
	if err != nil {
		return nil, repo.Classify(err, "order", "list")
	}

	byUser := make(map[uuid.UUID][]models.Order, len(rows))
	for _, order := range orders {
		byUser[order.UserID] = append(byUser[order.UserID], order)
	}
	out := make([]WithOrders, 0, len(rows))
	for _, row := range rows {
		owned := byUser[row.ID]
		if owned == nil {
			owned = []models.Order{}
		}
		out = append(out, WithOrders{User: row, Orders: owned})
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "user", "load")
	}
	return user, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.User, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, uuid.Nil, input.Username, input.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsAdmin:      input.IsAdmin,
		IsActive:     active,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, repo.Classify(err, "user", "create")
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.User, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.Classify(err, "user", "load")
	}
	if err := s.ensureUnique(ctx, id, input.Username, input.Email); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}
	user.Username = input.Username
	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.IsAdmin = input.IsAdmin
	user.IsActive = input.IsActive
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, repo.Classify(err, "user", "update")
	}
	return user, nil
}

// Delete removes the account with its cart and orders. An actor can never
// delete their own account.
func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete your own account")
	}
	return repo.Classify(s.repo.Delete(ctx, id), "user", "delete")
}

func (s *service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	return count, repo.Classify(err, "user", "count")
}

// ensureUnique rejects a username or email held by an account other than self.
func (s *service) ensureUnique(ctx context.Context, self uuid.UUID, username, email string) error {
	if taken, err := s.taken(s.repo.FindByUsername(ctx, username)); err != nil {
		return err
	} else if taken != nil && taken.ID != self {
		return pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
	}
	if taken, err := s.taken(s.repo.FindByEmail(ctx, email)); err != nil {
		return err
	} else if taken != nil && taken.ID != self {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
	}
	return nil
}

func (s *service) taken(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repo.Classify(err, "user", "load")
	}
	return user, nil
}
