package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/internal/access"
	"github.com/angelmondragon/libreria-backend/internal/catalog"
	"github.com/angelmondragon/libreria-backend/internal/inventory"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/internal/users"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

type (
	CategoryResource  = Resource[catalog.CategoryDTO, catalog.CategoryInput, catalog.CategoryInput]
	SupplierResource  = Resource[catalog.SupplierDTO, catalog.SupplierInput, catalog.SupplierInput]
	BookResource      = Resource[catalog.BookDTO, catalog.BookInput, catalog.BookInput]
	InventoryResource = Resource[inventory.ItemDTO, inventory.CreateInput, inventory.UpdateInput]
	OrderResource     = Resource[orders.OrderDTO, orders.CreateInput, orders.UpdateInput]
	UserResource      = Resource[users.UserWithOrdersDTO, users.CreateInput, users.UpdateInput]
)

// Categories returns the guarded category resource.
func Categories(svc catalog.Service) CategoryResource {
	return Guard(FromOps(Ops[models.Category, catalog.CategoryInput, catalog.CategoryInput]{
		List:   svc.ListCategories,
		Get:    svc.GetCategory,
		Create: svc.CreateCategory,
		Update: svc.UpdateCategory,
		Delete: svc.DeleteCategory,
	}, catalog.NewCategoryDTO))
}

func Suppliers(svc catalog.Service) SupplierResource {
	return Guard(FromOps(Ops[models.Supplier, catalog.SupplierInput, catalog.SupplierInput]{
		List:   svc.ListSuppliers,
		Get:    svc.GetSupplier,
		Create: svc.CreateSupplier,
		Update: svc.UpdateSupplier,
		Delete: svc.DeleteSupplier,
	}, catalog.NewSupplierDTO))
}

func Books(svc catalog.Service) BookResource {
	return Guard(FromOps(Ops[models.Book, catalog.BookInput, catalog.BookInput]{
		List:   svc.ListBooks,
		Get:    svc.GetBook,
		Create: svc.CreateBook,
		Update: svc.UpdateBook,
		Delete: svc.DeleteBook,
	}, catalog.NewBookDTO))
}

func Inventory(svc inventory.Service) InventoryResource {
	return Guard(FromOps(Ops[models.Inventory, inventory.CreateInput, inventory.UpdateInput]{
		List:   svc.List,
		Get:    svc.Get,
		Create: svc.Create,
		Update: svc.Update,
		Delete: svc.Delete,
	}, inventory.NewItemDTO))
}

func Orders(svc orders.Service) OrderResource {
	return Guard(FromOps(Ops[models.Order, orders.CreateInput, orders.UpdateInput]{
		List:   svc.List,
		Get:    svc.Get,
		Create: svc.Create,
		Update: svc.Update,
		Delete: svc.Delete,
	}, orders.NewOrderDTO))
}

// Users returns the guarded user resource. Each user is rendered with their
// orders, and deletes carry the acting admin so self-deletion is refused.
func Users(accounts users.Service, history orders.Service) UserResource {
	return Guard[users.UserWithOrdersDTO, users.CreateInput, users.UpdateInput](userResource{accounts: accounts, history: history})
}

type userResource struct {
	accounts users.Service
	history  orders.Service
}

func (r userResource) List(ctx context.Context, _ access.Principal) ([]users.UserWithOrdersDTO, error) {
	rows, err := r.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	return users.FromWithOrders(rows), nil
}

func (r userResource) Get(ctx context.Context, _ access.Principal, id uuid.UUID) (users.UserWithOrdersDTO, error) {
	user, err := r.accounts.Get(ctx, id)
	if err != nil {
		return users.UserWithOrdersDTO{}, err
	}
	return r.withOrders(ctx, user)
}

func (r userResource) Create(ctx context.Context, _ access.Principal, input users.CreateInput) (users.UserWithOrdersDTO, error) {
	user, err := r.accounts.Create(ctx, input)
	if err != nil {
		return users.UserWithOrdersDTO{}, err
	}
	return users.UserWithOrdersDTO{UserDTO: *users.FromModel(user), Orders: []orders.OrderDTO{}}, nil
}

func (r userResource) Update(ctx context.Context, _ access.Principal, id uuid.UUID, input users.UpdateInput) (users.UserWithOrdersDTO, error) {
	user, err := r.accounts.Update(ctx, id, input)
	if err != nil {
		return users.UserWithOrdersDTO{}, err
	}
	return r.withOrders(ctx, user)
}

func (r userResource) Delete(ctx context.Context, p access.Principal, id uuid.UUID) error {
	return r.accounts.Delete(ctx, p.UserID, id)
}

func (r userResource) withOrders(ctx context.Context, user *models.User) (users.UserWithOrdersDTO, error) {
	rows, err := r.history.ListForUser(ctx, user.ID)
	if err != nil {
		return users.UserWithOrdersDTO{}, fmt.Errorf("list orders: %w", err)
	}
	return users.UserWithOrdersDTO{UserDTO: *users.FromModel(user), Orders: orders.NewOrderDTOs(rows)}, nil
}
