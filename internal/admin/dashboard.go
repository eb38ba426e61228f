package admin

import (
	"context"
	"fmt"

	"github.com/angelmondragon/libreria-backend/internal/access"
	"github.com/angelmondragon/libreria-backend/internal/catalog"
	"github.com/angelmondragon/libreria-backend/internal/inventory"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/internal/users"
)

const recentBooksLimit = 5

// Counts are the headline totals on the back-office landing page.
type Counts struct {
	Books     int64 `json:"books"`
	Suppliers int64 `json:"suppliers"`
	Orders    int64 `json:"orders"`
	Users     int64 `json:"users"`
}

type DashboardDTO struct {
	Counts      Counts              `json:"counts"`
	RecentBooks []catalog.BookDTO   `json:"recent_books"`
	LowStock    []inventory.ItemDTO `json:"low_stock"`
}

// Dashboard aggregates the back-office summary.
type Dashboard interface {
	Summary(ctx context.Context, p access.Principal) (*DashboardDTO, error)
}

type dashboard struct {
	catalog   catalog.Service
	inventory inventory.Service
	orders    orders.Service
	users     users.Service
}

func NewDashboard(catalogSvc catalog.Service, inventorySvc inventory.Service, ordersSvc orders.Service, usersSvc users.Service) (Dashboard, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if usersSvc == nil {
		return nil, fmt.Errorf("users service required")
	}
	return &dashboard{catalog: catalogSvc, inventory: inventorySvc, orders: ordersSvc, users: usersSvc}, nil
}

func (d *dashboard) Summary(ctx context.Context, p access.Principal) (*DashboardDTO, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}

	var (
		counts Counts
		err    error
	)
	if counts.Books, err = d.catalog.CountBooks(ctx); err != nil {
		return nil, err
	}
	if counts.Suppliers, err = d.catalog.CountSuppliers(ctx); err != nil {
		return nil, err
	}
	if counts.Orders, err = d.orders.Count(ctx); err != nil {
		return nil, err
	}
	if counts.Users, err = d.users.Count(ctx); err != nil {
		return nil, err
	}

	recent, err := d.catalog.RecentBooks(ctx, recentBooksLimit)
	if err != nil {
		return nil, err
	}
	low, err := d.inventory.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardDTO{
		Counts:      counts,
		RecentBooks: catalog.NewBookDTOs(recent),
		LowStock:    inventory.NewItemDTOs(low),
	}, nil
}
